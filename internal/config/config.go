// Package config handles configuration loading and defaults for sidequest.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/sidequest/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"sidequest/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.sidequest)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Sync configures the Gist cloud backup
	Sync SyncConfig `yaml:"sync,omitempty"`

	// Sound enables audio feedback for quest events
	Sound SoundConfig `yaml:"sound,omitempty"`
}

// SyncConfig defines Gist sync settings. Token and GistID are opaque
// strings handed to the sync client; they are never interpreted here.
type SyncConfig struct {
	// Enabled enables/disables cloud backup
	Enabled bool `yaml:"enabled,omitempty"`

	// Token is the GitHub token used for Gist access
	Token string `yaml:"token,omitempty"`

	// GistID is the id of the backup gist (written back after first sync)
	GistID string `yaml:"gist_id,omitempty"`
}

// SoundConfig defines audio feedback settings.
type SoundConfig struct {
	// Enabled enables/disables sound cues
	Enabled bool `yaml:"enabled,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Available color for quests not yet tracked (hex, e.g. "#EF4444")
	Available string `yaml:"available,omitempty"`

	// Tracking color for in-progress quests (hex)
	Tracking string `yaml:"tracking,omitempty"`

	// Complete color for finished quests (hex)
	Complete string `yaml:"complete,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit    string `yaml:"quit,omitempty"`     // default: "q,ctrl+c"
	Help    string `yaml:"help,omitempty"`     // default: "?"
	NextTab string `yaml:"next_tab,omitempty"` // default: "tab"
	Tab1    string `yaml:"tab_1,omitempty"`    // default: "1"
	Tab2    string `yaml:"tab_2,omitempty"`    // default: "2"
	Tab3    string `yaml:"tab_3,omitempty"`    // default: "3"

	// Navigation keys
	Up   string `yaml:"up,omitempty"`   // default: "k,up"
	Down string `yaml:"down,omitempty"` // default: "j,down"

	// Quest keys
	AddQuest    string `yaml:"add_quest,omitempty"`    // default: "a"
	DeleteQuest string `yaml:"delete_quest,omitempty"` // default: "x"
	Advance     string `yaml:"advance,omitempty"`      // default: "enter"
	Demote      string `yaml:"demote,omitempty"`       // default: "backspace"
	Pin         string `yaml:"pin,omitempty"`          // default: "p"
	MoveUp      string `yaml:"move_up,omitempty"`      // default: "K"
	MoveDown    string `yaml:"move_down,omitempty"`    // default: "J"
	SortMode    string `yaml:"sort_mode,omitempty"`    // default: "s"
	OpenTasks   string `yaml:"open_tasks,omitempty"`   // default: "l,right"

	// Task keys
	AddTask    string `yaml:"add_task,omitempty"`    // default: "a"
	ToggleTask string `yaml:"toggle_task,omitempty"` // default: "d,space"
	DeleteTask string `yaml:"delete_task,omitempty"` // default: "x"
	CloseTasks string `yaml:"close_tasks,omitempty"` // default: "h,left"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting items
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// DefaultSort is the board sort mode on startup
	// (manual, newest, oldest, most-tasks, fewest-tasks, alphabetical)
	DefaultSort string `yaml:"default_sort,omitempty"` // default: "manual"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Available: "#EF4444", // Red
			Tracking:  "#F59E0B", // Amber
			Complete:  "#10B981", // Emerald
			Accent:    "#7C3AED", // Violet
			Muted:     "#6B7280", // Gray
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			DefaultSort:      "manual",
		},
		Sync: SyncConfig{
			Enabled: false, // Disabled by default
		},
		Sound: SoundConfig{
			Enabled: false, // Disabled by default
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sidequest"
	}
	return filepath.Join(home, ".sidequest")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sidequest")
	}

	// Fall back to ~/.config/sidequest
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sidequest")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty string values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	overrides := []struct {
		dst *string
		src string
	}{
		{&c.DataDir, other.DataDir},

		{&c.Theme.Available, other.Theme.Available},
		{&c.Theme.Tracking, other.Theme.Tracking},
		{&c.Theme.Complete, other.Theme.Complete},
		{&c.Theme.Accent, other.Theme.Accent},
		{&c.Theme.Muted, other.Theme.Muted},

		{&c.Keys.Quit, other.Keys.Quit},
		{&c.Keys.Help, other.Keys.Help},
		{&c.Keys.NextTab, other.Keys.NextTab},
		{&c.Keys.Tab1, other.Keys.Tab1},
		{&c.Keys.Tab2, other.Keys.Tab2},
		{&c.Keys.Tab3, other.Keys.Tab3},
		{&c.Keys.Up, other.Keys.Up},
		{&c.Keys.Down, other.Keys.Down},
		{&c.Keys.AddQuest, other.Keys.AddQuest},
		{&c.Keys.DeleteQuest, other.Keys.DeleteQuest},
		{&c.Keys.Advance, other.Keys.Advance},
		{&c.Keys.Demote, other.Keys.Demote},
		{&c.Keys.Pin, other.Keys.Pin},
		{&c.Keys.MoveUp, other.Keys.MoveUp},
		{&c.Keys.MoveDown, other.Keys.MoveDown},
		{&c.Keys.SortMode, other.Keys.SortMode},
		{&c.Keys.OpenTasks, other.Keys.OpenTasks},
		{&c.Keys.AddTask, other.Keys.AddTask},
		{&c.Keys.ToggleTask, other.Keys.ToggleTask},
		{&c.Keys.DeleteTask, other.Keys.DeleteTask},
		{&c.Keys.CloseTasks, other.Keys.CloseTasks},
		{&c.Keys.Confirm, other.Keys.Confirm},
		{&c.Keys.Cancel, other.Keys.Cancel},

		{&c.UX.DefaultSort, other.UX.DefaultSort},

		{&c.Sync.Token, other.Sync.Token},
		{&c.Sync.GistID, other.Sync.GistID},
	}

	for _, o := range overrides {
		if o.src != "" {
			*o.dst = o.src
		}
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		c.mergeNonEmpty(other)
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "sync", "enabled") {
		c.Sync.Enabled = other.Sync.Enabled
	}
	if yamlHasPath(doc, "sound", "enabled") {
		c.Sound.Enabled = other.Sound.Enabled
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}
