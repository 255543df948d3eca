package ui

import (
	"reflect"
	"testing"

	"sidequest/internal/config"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		defaults []string
		want     []string
	}{
		{"empty uses defaults", "", []string{"q", "ctrl+c"}, []string{"q", "ctrl+c"}},
		{"single custom key", "ctrl+q", []string{"q"}, []string{"ctrl+q"}},
		{"comma separated", "ctrl+q,esc", []string{"q"}, []string{"ctrl+q", "esc"}},
		{"whitespace trimmed", " ctrl+q , esc ", []string{"q"}, []string{"ctrl+q", "esc"}},
		{"blank entries dropped", "ctrl+q,,", []string{"q"}, []string{"ctrl+q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeys(tt.custom, tt.defaults...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeys(%q) = %v, want %v", tt.custom, got, tt.want)
			}
		})
	}
}

func TestNewGlobalKeyMap_CustomBindings(t *testing.T) {
	keys := NewGlobalKeyMap(&config.KeysConfig{Quit: "ctrl+q"})

	if got := keys.Quit.Keys(); !reflect.DeepEqual(got, []string{"ctrl+q"}) {
		t.Errorf("Quit keys = %v, want [ctrl+q]", got)
	}
	// Unconfigured bindings keep their defaults.
	if got := keys.Help.Keys(); !reflect.DeepEqual(got, []string{"?"}) {
		t.Errorf("Help keys = %v, want [?]", got)
	}
}

func TestNewBoardKeyMap_NilConfig(t *testing.T) {
	keys := NewBoardKeyMap(nil)

	if got := keys.Add.Keys(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Add keys = %v, want [a]", got)
	}
	if got := keys.Down.Keys(); !reflect.DeepEqual(got, []string{"j", "down"}) {
		t.Errorf("Down keys = %v, want [j down]", got)
	}
}

func TestBoardKeyMap_Help(t *testing.T) {
	keys := DefaultBoardKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	for i, row := range keys.FullHelp() {
		if len(row) == 0 {
			t.Errorf("FullHelp() row %d is empty", i)
		}
	}
}

func TestTaskKeyMap_Defaults(t *testing.T) {
	keys := DefaultTaskKeyMap()

	if got := keys.Toggle.Keys(); !reflect.DeepEqual(got, []string{"d", " "}) {
		t.Errorf("Toggle keys = %v, want [d space]", got)
	}
	if got := keys.Close.Keys(); !reflect.DeepEqual(got, []string{"h", "left", "esc"}) {
		t.Errorf("Close keys = %v, want [h left esc]", got)
	}
}
