package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorAccent).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorWarning).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("⚔ sidequest - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Next column") + "\n")
	b.WriteString(keyStyle.Render("1 / 2 / 3") + descStyle.Render("Jump to column") + "\n")
	b.WriteString(keyStyle.Render("?") + descStyle.Render("Toggle help") + "\n")
	b.WriteString(keyStyle.Render("q") + descStyle.Render("Quit") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Board"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a") + descStyle.Render("Add quest") + "\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Track / complete quest") + "\n")
	b.WriteString(keyStyle.Render("Bksp") + descStyle.Render("Move quest back") + "\n")
	b.WriteString(keyStyle.Render("p") + descStyle.Render("Pin quest") + "\n")
	b.WriteString(keyStyle.Render("s") + descStyle.Render("Cycle sort mode") + "\n")
	b.WriteString(keyStyle.Render("J / K") + descStyle.Render("Reorder quest") + "\n")
	b.WriteString(keyStyle.Render("x") + descStyle.Render("Delete quest") + "\n")
	b.WriteString(keyStyle.Render("l / →") + descStyle.Render("Open tasks") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Navigate") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a") + descStyle.Render("Add task") + "\n")
	b.WriteString(keyStyle.Render("d / Space") + descStyle.Render("Toggle task") + "\n")
	b.WriteString(keyStyle.Render("J / K") + descStyle.Render("Reorder task") + "\n")
	b.WriteString(keyStyle.Render("x") + descStyle.Render("Delete task") + "\n")
	b.WriteString(keyStyle.Render("h / Esc") + descStyle.Render("Back to board") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Input Mode"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Save") + "\n")
	b.WriteString(keyStyle.Render("Esc") + descStyle.Render("Cancel") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
