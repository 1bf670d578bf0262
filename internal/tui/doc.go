// Package tui renders a select widget in the terminal with Bubble Tea.
//
// The Model owns a selectbox.Core and translates terminal input into widget
// events: arrow keys, enter, space and escape become KeyDown events, typed
// text edits the search box, and left clicks map onto the control, an
// option row or the outside of the widget. Effects returned by the core
// become commands: debounce delays are tea.Tick timers and option fetches
// run as commands whose results come back as messages, so the core is only
// ever touched from the update loop.
//
// # Usage Example
//
//	m, err := tui.New(cfg, tui.Options{QuitOnSelect: true})
//	if err != nil {
//	    return err
//	}
//	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
//	if err != nil {
//	    return err
//	}
//	if sel := final.(tui.Model).Selection(); sel != nil {
//	    fmt.Println(*sel.Target.Value)
//	}
//
// # Layout
//
// Every screen is wrapped by RenderApplicationContainer, which draws the
// header, the help footer and the outer border, and reports where the
// content starts. The widget records the rows of its control and option
// list on each render; the MouseRegion uses those bounds to tell presses
// inside the widget from presses outside it.
package tui
