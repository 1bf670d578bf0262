package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"

	"github.com/muurk/selectbox/internal/version"
)

// Application branding constants
const (
	AppName   = "SELECTBOX"
	GitHubURL = "github.com/muurk/selectbox"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 40  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
	DefaultWidth     = 72  // Used until the first WindowSizeMsg
	DefaultHeight    = 24
	CellWidthPx      = 8 // Pixels per terminal column when converting layout widths
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	// Neutral colors
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Control style - the closed select box
	ControlStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// Focused control style
	FocusedControlStyle = ControlStyle.
				BorderForeground(BorderColor)

	// Disabled control style
	DisabledControlStyle = ControlStyle.
				Foreground(SubtleColor).
				BorderForeground(SubtleColor)

	// Dropdown style - the open option list
	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Placeholder style
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Italic(true)

	// Option style (unhighlighted)
	OptionStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	// Option style (highlighted)
	HighlightedOptionStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	// Selected marker style
	SelectedMarkerStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor)

	// Search prompt style
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Muted text inside the dropdown (no results, loading)
	NoticeStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Label style for the widget name
	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Bold(true)
)

// Markers
const (
	HighlightMarker = "→ "
	SelectedMarker  = "✓"
	ClearMarker     = "×"
	OpenMarker      = "▴"
	ClosedMarker    = "▾"
)

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps content in the full-screen frame: outer
// border, header and a footer pinned under the content. It also returns the
// terminal row and column where content starts, so mouse events can be
// mapped back onto the widget.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) (string, int, int) {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)
	styledHeader := headerStyle.Render(BuildHeaderContent())

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)
	styledFooter := footerStyle.Render(BuildFooterContent(footerText))

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)
	styledContent := contentStyle.Render(content)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styledHeader,
		styledContent,
		styledFooter,
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top)

	framed := lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		borderStyle.Render(innerContent),
	)
	// one row and one column of outer border
	return framed, 1 + lipgloss.Height(styledHeader), 1
}

// ColumnsFor converts a layout width ("245px", "100%", "30") into terminal
// columns, capped at available.
func ColumnsFor(width string, available int) int {
	w := strings.TrimSpace(width)
	cols := available
	switch {
	case w == "" || strings.HasSuffix(w, "%"):
		// relative widths fill the available space
	case strings.HasSuffix(w, "px"):
		if px, err := cast.ToIntE(strings.TrimSuffix(w, "px")); err == nil {
			cols = px / CellWidthPx
		}
	default:
		if n, err := cast.ToIntE(w); err == nil {
			cols = n
		}
	}
	if cols > available {
		cols = available
	}
	if cols < 12 {
		cols = 12
	}
	return cols
}
