package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/selectbox/internal/fetch"
	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/selectbox"
)

// Messages for async operations
type debounceMsg struct{ gen uint64 }
type fetchDoneMsg struct {
	gen   uint64
	items []fetch.Item
	err   error
}
type focusMsg struct{}
type errMsg struct{ err error }

// Options configures a Model. Every field is optional.
type Options struct {
	// Fetcher loads remote options. Built from the widget's request config when nil.
	Fetcher *fetch.Fetcher
	// Region receives mouse presses. A private region is used when nil.
	Region *MouseRegion
	// QuitOnSelect ends the program once an option is picked.
	QuitOnSelect bool
}

// session holds the mutable state shared by every copy of a Model.
type session struct {
	picked  *selectbox.SelectionEvent
	release func()
	outside bool
	top     int
	left    int
	layout  widgetLayout
	cache   optionCache
}

// Model is a Bubble Tea model rendering one select widget.
type Model struct {
	core    *selectbox.Core
	fetcher *fetch.Fetcher
	region  *MouseRegion
	ctx     context.Context
	cancel  context.CancelFunc
	sess    *session

	// UI state
	Search  textinput.Model
	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap

	Width        int
	Height       int
	Err          error
	Quitting     bool
	quitOnSelect bool
}

// New builds the core for cfg and wraps it in a model. The model records
// every selection; an OnSelect already set on cfg is still called.
func New(cfg *selectbox.Config, opts Options) (Model, error) {
	sess := &session{}
	user := cfg.OnSelect
	cfg.OnSelect = func(ev selectbox.SelectionEvent) {
		sess.picked = &ev
		if user != nil {
			user(ev)
		}
	}

	core, err := selectbox.New(cfg)
	if err != nil {
		return Model{}, err
	}

	fetcher := opts.Fetcher
	if fetcher == nil && cfg.Request != nil {
		fetcher = fetch.NewFetcher(cfg.Request.Endpoint, cfg.Request.Client, cfg.Request.ResponseDataFormatter)
	}
	region := opts.Region
	if region == nil {
		region = NewMouseRegion()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	search := textinput.New()
	search.Prompt = SearchPromptStyle.Render("⌕ ")
	search.Placeholder = "Search"
	search.SetValue(core.View().SearchTerm)

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		core:         core,
		fetcher:      fetcher,
		region:       region,
		ctx:          ctx,
		cancel:       cancel,
		sess:         sess,
		Search:       search,
		Spinner:      s,
		Help:         help.New(),
		Keys:         newKeyMap(),
		quitOnSelect: opts.QuitOnSelect,
	}, nil
}

// Core returns the widget core driven by the model.
func (m Model) Core() *selectbox.Core { return m.core }

// Selection returns the last selection event, or nil.
func (m Model) Selection() *selectbox.SelectionEvent { return m.sess.picked }

// Init mounts the widget
func (m Model) Init() tea.Cmd {
	effects, err := m.core.Dispatch(selectbox.Mount{})
	if err != nil {
		return func() tea.Msg { return errMsg{err: err} }
	}
	return tea.Batch(m.commands(effects)...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case debounceMsg:
		return m.dispatch(selectbox.DebounceElapsed{Gen: msg.gen})

	case fetchDoneMsg:
		if msg.err != nil {
			return m.dispatch(selectbox.FetchFailed{Gen: msg.gen, Err: msg.err})
		}
		return m.dispatch(selectbox.FetchSucceeded{Gen: msg.gen, Items: msg.items})

	case focusMsg:
		// the search box is the only focusable part
		if v := m.core.View(); v.ShowSearch && v.DropdownOpened {
			return m, m.Search.Focus()
		}
		return m, nil

	case errMsg:
		m.Err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.core.State().IsPending {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages
	m.Search, cmd = m.Search.Update(msg)
	return m, cmd
}

// updateKey maps terminal keys onto widget events. While the dropdown is
// open with a search box, unbound keys edit the search term.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		return m.shutdown()
	}

	view := m.core.View()
	searching := view.ShowSearch && view.DropdownOpened

	switch {
	case key.Matches(msg, m.Keys.Up):
		return m.dispatch(selectbox.KeyDown{Key: selectbox.KeyArrowUp})
	case key.Matches(msg, m.Keys.Down):
		return m.dispatch(selectbox.KeyDown{Key: selectbox.KeyArrowDown})
	case key.Matches(msg, m.Keys.Select):
		return m.dispatch(selectbox.KeyDown{Key: selectbox.KeyEnter})
	case key.Matches(msg, m.Keys.Close):
		if !view.DropdownOpened {
			return m.shutdown()
		}
		return m.dispatch(selectbox.KeyDown{Key: selectbox.KeyEscape})
	case key.Matches(msg, m.Keys.Toggle) && !searching:
		return m.dispatch(selectbox.KeyDown{Key: selectbox.KeySpace})
	case key.Matches(msg, m.Keys.Clear) && view.Clearable:
		return m.dispatch(selectbox.ClearClick{})
	}

	if !searching {
		return m, nil
	}

	before := m.Search.Value()
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() == before {
		return m, cmd
	}
	next, dispatched := m.dispatch(selectbox.SearchInput{Term: m.Search.Value(), Raw: msg})
	return next, tea.Batch(cmd, dispatched)
}

// updateMouse maps left-button presses onto the control, an option row or
// the outside of the widget.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if !m.region.Press(msg.X, msg.Y) {
		if m.sess.outside {
			m.sess.outside = false
			return m.dispatch(selectbox.ClickOutside{})
		}
		return m, nil
	}

	row := msg.Y - m.sess.top
	if i, ok := m.sess.layout.optionAt(row); ok {
		visible := m.core.View().Options
		if i < len(visible) {
			return m.dispatch(selectbox.OptionClick{ID: visible[i].ID})
		}
	}
	if m.sess.layout.inControl(row) {
		return m.dispatch(selectbox.ContainerClick{})
	}
	return m, nil
}

// dispatch applies ev to the core and turns the resulting effects into commands.
func (m Model) dispatch(ev selectbox.Event) (Model, tea.Cmd) {
	before := m.sess.picked
	effects, err := m.core.Dispatch(ev)
	if err != nil {
		m.Err = err
		logging.Debug("Event rejected", zap.Error(err))
		return m, nil
	}
	m.Err = nil

	cmds := m.commands(effects)

	view := m.core.View()
	if view.SearchTerm != m.Search.Value() {
		m.Search.SetValue(view.SearchTerm)
	}
	switch open := view.ShowSearch && view.DropdownOpened; {
	case open && !m.Search.Focused():
		cmds = append(cmds, m.Search.Focus())
	case !open && m.Search.Focused():
		m.Search.Blur()
	}

	if picked := m.sess.picked; m.quitOnSelect && picked != before && picked.Target.Option != nil {
		next, quit := m.shutdown()
		return next, tea.Batch(append(cmds, quit)...)
	}
	return m, tea.Batch(cmds...)
}

// commands executes effects that need the model and returns the rest as commands.
func (m Model) commands(effects []selectbox.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case selectbox.ArmDebounce:
			gen := e.Gen
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg {
				return debounceMsg{gen: gen}
			}))
		case selectbox.CancelDebounce:
			// Ticks already scheduled carry a stale generation.
		case selectbox.StartFetch:
			cmds = append(cmds, m.fetchCmd(e), m.Spinner.Tick)
		case selectbox.FocusRoot:
			cmds = append(cmds, func() tea.Msg { return focusMsg{} })
		case selectbox.WatchOutside:
			if m.sess.release == nil {
				sess := m.sess
				sess.release = m.region.Observe(func() { sess.outside = true })
			}
		case selectbox.UnwatchOutside:
			if m.sess.release != nil {
				m.sess.release()
				m.sess.release = nil
			}
		}
	}
	return cmds
}

// fetchCmd loads the options for e off the update loop.
func (m Model) fetchCmd(e selectbox.StartFetch) tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		if fetcher == nil {
			return fetchDoneMsg{gen: e.Gen, err: errors.New("no option source configured")}
		}
		items, err := fetcher.Fetch(ctx, e.URL)
		return fetchDoneMsg{gen: e.Gen, items: items, err: err}
	}
}

// shutdown unmounts the widget, abandons in-flight fetches and quits.
func (m Model) shutdown() (Model, tea.Cmd) {
	if effects, err := m.core.Dispatch(selectbox.Unmount{}); err == nil {
		m.commands(effects)
	}
	m.cancel()
	m.Quitting = true
	return m, tea.Quit
}

// View renders the widget inside the application frame
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	width, height := m.Width, m.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	view := m.core.View()
	avail := min(width, MaxContentWidth) - 8
	m.Search.Width = avail - 8
	widget, lay := m.renderWidget(view, ColumnsFor(view.Layout.Width, avail))

	label := LabelStyle.Render(view.Name)
	rows := []string{label, widget}
	if m.Err != nil {
		rows = append(rows, "", RenderError(m.Err.Error()))
	}
	content := lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	m.Keys.Clear.SetEnabled(view.Clearable)
	frame, top, left := RenderApplicationContainer(content, m.Help.View(m.Keys), width, height)

	// padding row and label row above the widget
	m.sess.top = top + 1 + lipgloss.Height(label)
	m.sess.left = left + 2
	m.sess.layout = lay
	m.region.SetBounds(m.sess.left, m.sess.top, lay.width, lay.height)
	return frame
}
