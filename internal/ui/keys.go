// Package ui provides terminal user interface components for the sidequest app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"sidequest/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextTab, "tab")...),
			key.WithHelp("tab", "next column"),
		),
		Tab1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Tab1, "1")...),
			key.WithHelp("1", "available"),
		),
		Tab2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Tab2, "2")...),
			key.WithHelp("2", "tracking"),
		),
		Tab3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Tab3, "3")...),
			key.WithHelp("3", "complete"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list views)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up   key.Binding
	Down key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Board Keys
// =============================================================================

// BoardKeyMap defines keys for the quest board.
type BoardKeyMap struct {
	Add       key.Binding
	Delete    key.Binding
	Advance   key.Binding
	Demote    key.Binding
	Pin       key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Sort      key.Binding
	OpenTasks key.Binding
	NavigationKeyMap
}

// DefaultBoardKeyMap returns the default board key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return NewBoardKeyMap(&config.KeysConfig{})
}

// NewBoardKeyMap creates board key bindings from config.
func NewBoardKeyMap(cfg *config.KeysConfig) BoardKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return BoardKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddQuest, "a")...),
			key.WithHelp("a", "add quest"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteQuest, "x")...),
			key.WithHelp("x", "delete"),
		),
		Advance: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Advance, "enter")...),
			key.WithHelp("enter", "advance"),
		),
		Demote: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Demote, "backspace")...),
			key.WithHelp("bksp", "move back"),
		),
		Pin: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pin, "p")...),
			key.WithHelp("p", "pin"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveUp, "K", "shift+up")...),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveDown, "J", "shift+down")...),
			key.WithHelp("J", "move down"),
		),
		Sort: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SortMode, "s")...),
			key.WithHelp("s", "sort"),
		),
		OpenTasks: key.NewBinding(
			key.WithKeys(parseKeys(cfg.OpenTasks, "l", "right")...),
			key.WithHelp("l/→", "tasks"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the board (implements help.KeyMap).
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Advance, k.OpenTasks, k.Down}
}

// FullHelp returns the full help for the board (implements help.KeyMap).
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Delete, k.Advance, k.Demote},
		{k.Pin, k.MoveUp, k.MoveDown, k.Sort},
		{k.Up, k.Down, k.OpenTasks},
	}
}

// =============================================================================
// Task View Keys
// =============================================================================

// TaskKeyMap defines keys for the quest task view.
type TaskKeyMap struct {
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Close    key.Binding
	NavigationKeyMap
}

// DefaultTaskKeyMap returns the default task view key bindings.
func DefaultTaskKeyMap() TaskKeyMap {
	return NewTaskKeyMap(&config.KeysConfig{})
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddTask, "a")...),
			key.WithHelp("a", "add task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTask, "d", " ")...),
			key.WithHelp("d/space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteTask, "x")...),
			key.WithHelp("x", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveUp, "K", "shift+up")...),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveDown, "J", "shift+down")...),
			key.WithHelp("J", "move down"),
		),
		Close: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CloseTasks, "h", "left", "esc")...),
			key.WithHelp("h/esc", "back"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the task view (implements help.KeyMap).
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Close}
}

// FullHelp returns the full help for the task view (implements help.KeyMap).
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Close},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
