package ui

import (
	"sidequest/internal/config"
	"sidequest/internal/quest"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorAvailable lipgloss.Color
	ColorTracking  lipgloss.Color
	ColorComplete  lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle  lipgloss.Style
	DateStyle   lipgloss.Style
	LevelStyle  lipgloss.Style
	StreakStyle lipgloss.Style
	XPBarStyle  lipgloss.Style

	ColumnStyle        lipgloss.Style
	ColumnFocusedStyle lipgloss.Style
	ColumnTitleStyle   lipgloss.Style

	QuestStyle         lipgloss.Style
	QuestSelectedStyle lipgloss.Style
	QuestDoneStyle     lipgloss.Style
	PinIcon            string

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	ToastStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style

	// Sync status styles
	SyncOKStyle       lipgloss.Style // Last sync succeeded
	SyncActiveStyle   lipgloss.Style // Sync in flight
	SyncErrStyle      lipgloss.Style // Last sync failed
	SyncDisabledStyle lipgloss.Style // Sync off
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorAvailable = colorOrDefault(theme.Available, "#EF4444")
	s.ColorTracking = colorOrDefault(theme.Tracking, "#F59E0B")
	s.ColorComplete = colorOrDefault(theme.Complete, "#10B981")
	s.ColorAccent = colorOrDefault(theme.Accent, "#7C3AED")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = lipgloss.Color("#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// StatusColor returns the theme color for a quest lifecycle stage.
func (s *Styles) StatusColor(status quest.Status) lipgloss.Color {
	switch status {
	case quest.StatusTracking:
		return s.ColorTracking
	case quest.StatusComplete:
		return s.ColorComplete
	default:
		return s.ColorAvailable
	}
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorAccent).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.LevelStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.XPBarStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	// Board columns
	s.ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.ColumnFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorAccent).
		Padding(0, 1)

	s.ColumnTitleStyle = lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1)

	// Quest cards
	s.QuestStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.QuestSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.QuestDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.PinIcon = lipgloss.NewStyle().Foreground(s.ColorWarning).Render("◆")

	// Task list
	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.ToastStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Background(s.ColorAccent).
		Padding(0, 1).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	// Sync status styles
	s.SyncOKStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess)

	s.SyncActiveStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.SyncErrStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.SyncDisabledStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
