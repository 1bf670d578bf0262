package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/selectbox/internal/selectbox"
)

// Default texts, overridable through the widget's lang map.
const (
	defaultNoOptions = "No options"
	defaultLoading   = "Loading…"
	defaultError     = "Could not load options"
	defaultNoValue   = "Select…"
)

// widgetLayout records where the parts of a rendered widget landed, in rows
// relative to the widget's top-left corner.
type widgetLayout struct {
	width       int
	height      int
	controlTop  int
	controlRows int
	optionsTop  int
	optionRows  int
}

// optionCache keeps the rendered option rows until the state they were
// rendered from changes.
type optionCache struct {
	valid bool
	state selectbox.State
	width int
	lines []string
}

const optionFields = selectbox.ChangeOptions | selectbox.ChangeSearchTerm |
	selectbox.ChangeHighlighted | selectbox.ChangeValue

func (c *optionCache) get(s selectbox.State, width int) ([]string, bool) {
	if !c.valid || c.width != width {
		return nil, false
	}
	if selectbox.Diff(c.state, s)&optionFields != 0 {
		return nil, false
	}
	return c.lines, true
}

func (c *optionCache) put(s selectbox.State, width int, lines []string) {
	c.valid, c.state, c.width, c.lines = true, s, width, lines
}

func lang(v selectbox.View, key, fallback string) string {
	if s, ok := v.Lang[key]; ok && s != "" {
		return s
	}
	return fallback
}

// renderControl renders the closed box: the selected text or placeholder,
// and the status markers on the right.
func renderControl(v selectbox.View, spinner string, cols int) string {
	var label string
	switch {
	case v.Selected != nil:
		label = selectbox.TextContent(v.Selected.Text)
	case v.Placeholder != "":
		label = PlaceholderStyle.Render(v.Placeholder)
	default:
		label = PlaceholderStyle.Render(lang(v, "placeholder", defaultNoValue))
	}

	var markers []string
	if v.IsPending {
		markers = append(markers, spinner)
	}
	if v.Clearable {
		markers = append(markers, ClearMarker)
	}
	if v.DropdownOpened {
		markers = append(markers, OpenMarker)
	} else {
		markers = append(markers, ClosedMarker)
	}
	right := strings.Join(markers, " ")

	inner := cols - 4
	gap := inner - lipgloss.Width(label) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := label + strings.Repeat(" ", gap) + right

	style := ControlStyle
	switch {
	case v.Disabled:
		style = DisabledControlStyle
	case v.DropdownOpened:
		style = FocusedControlStyle
	}
	if v.Error != nil {
		style = style.BorderForeground(ErrorColor)
	}
	return style.Width(cols - 2).Render(line)
}

// renderOptions renders one row per visible option, truncated to fit.
func renderOptions(v selectbox.View, cols int) []string {
	clip := lipgloss.NewStyle().MaxWidth(cols - 4)
	lines := make([]string, len(v.Options))
	for i, opt := range v.Options {
		text := strings.Join(strings.Fields(selectbox.TextContent(opt.Text)), " ")
		if v.Value != nil && *v.Value == opt.ID {
			text += " " + SelectedMarkerStyle.Render(SelectedMarker)
		}
		if v.Highlighted != nil && *v.Highlighted == i {
			lines[i] = clip.Render(HighlightedOptionStyle.Render(HighlightMarker + text))
		} else {
			lines[i] = clip.Render(OptionStyle.Render(text))
		}
	}
	return lines
}

// renderDropdown renders the open list. It returns the rendered box, the
// row of the first option inside it and the number of option rows.
func (m Model) renderDropdown(v selectbox.View, cols int) (string, int, int) {
	var rows []string
	if v.ShowSearch {
		rows = append(rows, m.Search.View())
	}

	optionsTop := len(rows) + 1 // top border
	optionRows := 0
	switch {
	case v.Error != nil:
		rows = append(rows, RenderError(v.Error.Text(lang(v, "error", defaultError))))
	case len(v.Options) == 0 && v.IsPending:
		rows = append(rows, NoticeStyle.Render(m.Spinner.View()+" "+lang(v, "loading", defaultLoading)))
	case len(v.Options) == 0:
		rows = append(rows, NoticeStyle.Render(lang(v, "noOptions", defaultNoOptions)))
	default:
		state := m.core.State()
		lines, ok := m.sess.cache.get(state, cols)
		if !ok {
			lines = renderOptions(v, cols)
			m.sess.cache.put(state, cols, lines)
		}
		rows = append(rows, lines...)
		optionRows = len(lines)
	}

	box := DropdownStyle.Width(cols - 2).Render(strings.Join(rows, "\n"))
	return box, optionsTop, optionRows
}

// renderWidget renders the control and, when open, the dropdown placed
// according to the widget layout.
func (m Model) renderWidget(v selectbox.View, cols int) (string, widgetLayout) {
	control := renderControl(v, m.Spinner.View(), cols)
	lay := widgetLayout{
		width:       cols,
		controlRows: lipgloss.Height(control),
		optionsTop:  -1,
	}

	align := lipgloss.Left
	if v.Layout.DropdownHorizontalPosition == "right" {
		align = lipgloss.Right
	}

	if !v.DropdownOpened {
		lay.height = lay.controlRows
		return control, lay
	}

	dropdown, optionsTop, optionRows := m.renderDropdown(v, cols)
	dropdownRows := lipgloss.Height(dropdown)
	lay.optionRows = optionRows

	var parts []string
	if v.Layout.DropdownVerticalPosition == "above" {
		parts = []string{dropdown, control}
		lay.optionsTop = optionsTop
		lay.controlTop = dropdownRows
	} else {
		parts = []string{control, dropdown}
		lay.optionsTop = lay.controlRows + optionsTop
	}
	if optionRows == 0 {
		lay.optionsTop = -1
	}
	lay.height = lay.controlRows + dropdownRows

	return lipgloss.JoinVertical(align, parts...), lay
}

// optionAt maps a widget-relative row to the index of a visible option.
func (l widgetLayout) optionAt(row int) (int, bool) {
	if l.optionsTop < 0 {
		return 0, false
	}
	i := row - l.optionsTop
	return i, i >= 0 && i < l.optionRows
}

func (l widgetLayout) inControl(row int) bool {
	return row >= l.controlTop && row < l.controlTop+l.controlRows
}
