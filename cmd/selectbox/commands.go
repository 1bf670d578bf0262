package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/selectbox/internal/config"
	"github.com/muurk/selectbox/internal/fetch"
	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/runner"
	"github.com/muurk/selectbox/internal/selectbox"
	"github.com/muurk/selectbox/internal/tui"
	"github.com/muurk/selectbox/internal/ui"
)

// errNoSelection is returned when the picker closes without a choice.
var errNoSelection = errors.New("no option selected")

// widgetFlags describe a widget on the command line. A --config file is
// loaded first and the flags override it.
type widgetFlags struct {
	configPath  string
	name        string
	placeholder string
	options     []string
	endpoint    string
	termQuery   string
	params      []string
	once        bool
	delay       int
	minLength   int
	mode        string
	value       string
	allowClear  bool
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Widget definition file (YAML)")
	fs.StringVar(&f.name, "name", "", "Widget name; selections are remembered per name")
	fs.StringVar(&f.placeholder, "placeholder", "", "Text shown when nothing is selected")
	fs.StringArrayVarP(&f.options, "option", "o", nil, "Option as id=text, or text alone (repeatable)")
	fs.StringVar(&f.endpoint, "endpoint", "", "Remote option source (http://, https://, ws:// or wss://)")
	fs.StringVar(&f.termQuery, "term-query", "", "Query parameter carrying the search term")
	fs.StringArrayVar(&f.params, "param", nil, "Static query parameter as key=value (repeatable)")
	fs.BoolVar(&f.once, "once", false, "Fetch remote options once when the widget opens")
	fs.IntVar(&f.delay, "delay", 0, "Debounce delay for remote search in milliseconds")
	fs.IntVar(&f.minLength, "min-length", 0, "Minimum term length before searching remotely")
	fs.StringVar(&f.mode, "mode", "", "Local matching mode (pattern, fuzzy)")
	fs.StringVar(&f.value, "value", "", "Initially selected option id")
	fs.BoolVar(&f.allowClear, "allow-clear", false, "Allow clearing the selection")
}

// build assembles the widget definition from the config file and flags.
func (f *widgetFlags) build(cmd *cobra.Command) (*selectbox.Config, error) {
	cfg := &selectbox.Config{}
	if f.configPath != "" {
		loaded, err := config.LoadWidget(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.Name == "" {
			cfg.Name = strings.TrimSuffix(filepath.Base(f.configPath), filepath.Ext(f.configPath))
		}
	}

	changed := cmd.Flags().Changed
	if changed("name") {
		cfg.Name = f.name
	}
	if changed("placeholder") {
		cfg.Placeholder = f.placeholder
	}
	if changed("allow-clear") {
		cfg.AllowClear = f.allowClear
	}
	if changed("value") {
		cfg.DefaultValue = f.value
	}
	if changed("mode") {
		cfg.Search.Mode = selectbox.SearchMode(f.mode)
	}
	if changed("min-length") {
		cfg.Search.MinLength = f.minLength
	}
	for _, o := range f.options {
		id, text, ok := strings.Cut(o, "=")
		if !ok {
			text = id
		}
		cfg.Options = append(cfg.Options, selectbox.RawOption{"id": id, "text": text})
	}

	if f.endpoint != "" || changed("term-query") || changed("once") || changed("delay") || len(f.params) > 0 {
		if cfg.Request == nil {
			cfg.Request = &selectbox.Request{}
		}
		r := cfg.Request
		if f.endpoint != "" {
			r.Endpoint = f.endpoint
		}
		if changed("term-query") {
			r.TermQuery = f.termQuery
		}
		if changed("once") {
			r.Once = f.once
		}
		if changed("delay") {
			r.Delay = f.delay
		}
		for _, p := range f.params {
			key, value, _ := strings.Cut(p, "=")
			if r.Params == nil {
				r.Params = fetch.NewParams()
			}
			r.Params.Set(key, value)
		}
		if r.Endpoint == "" {
			return nil, fmt.Errorf("--endpoint is required for remote options")
		}
	}

	if len(cfg.Options) == 0 && len(cfg.Children) == 0 && cfg.Markup == "" && cfg.Request == nil {
		return nil, fmt.Errorf("nothing to choose from: give --config, --option or --endpoint")
	}
	return cfg, nil
}

// loadRegistry returns the user registry, falling back to defaults when it
// cannot be read.
func loadRegistry() *config.Registry {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Ignoring unreadable registry", zap.Error(err))
		return config.NewRegistry()
	}
	return reg
}

var (
	pickFlags  widgetFlags
	pickOutput string
)

func init() {
	pickFlags.register(rootCmd)
	rootCmd.Flags().StringVar(&pickOutput, "output", "value", "Output format (value, json, pretty)")

	pickFlags.register(pickCmd)
	pickCmd.Flags().StringVar(&pickOutput, "output", "value", "Output format (value, json, pretty)")
	rootCmd.AddCommand(pickCmd)
}

// pickCmd opens the interactive picker
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Open the interactive picker",
	Long: `Open an interactive dropdown and print the selected option's id.

Use the arrow keys to move, Enter or a click to select, Esc to close and
type to search. The selection is remembered under the widget name and
preselected next time unless a value is given.`,
	Example: `  # Pick from inline options
  selectbox pick -o fr=France -o de=Germany -o it=Italy

  # Search a remote source as you type
  selectbox pick --endpoint http://localhost:8089/options --term-query q

  # Use a widget definition and print the selection event as JSON
  selectbox pick --config country.yaml --output json`,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := pickFlags.build(cmd)
	if err != nil {
		return err
	}

	reg := loadRegistry()
	name := cfg.Name
	reg.Preferences.Apply(cfg)
	if name != "" && reg.RestoreInto(cfg) {
		logging.Debug("Restored last selection", zap.String("widget", name))
	}

	model, err := tui.New(cfg, tui.Options{QuitOnSelect: true})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}
	if reg.Preferences.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	picked := final.(tui.Model).Selection()
	if picked == nil {
		return errNoSelection
	}

	if name != "" {
		text := ""
		if picked.Target.Option != nil {
			text = ui.OptionText(*picked.Target.Option)
		}
		reg.RecordSelection(name, picked.Target.Value, text)
		if path := pickFlags.configPath; path != "" {
			reg.EnsureWidget(name).ConfigPath = path
		}
		if err := reg.Save(); err != nil {
			logging.Warn("Failed to save registry", zap.Error(err))
		}
	}

	return printSelection(picked)
}

func printSelection(ev *selectbox.SelectionEvent) error {
	switch pickOutput {
	case "json":
		data, err := json.MarshalIndent(ev, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "pretty":
		if ui.IsTerminal() {
			ui.NewPrinter(nil).PrintSelection(ev.Target.Name, ev.Target.Option)
			return nil
		}
		// piped output gets the bare value
		fallthrough
	case "value":
		if ev.Target.Value != nil {
			fmt.Println(*ev.Target.Value)
		}
	default:
		return fmt.Errorf("unknown output format %q", pickOutput)
	}
	return nil
}

var (
	optionsFlags   widgetFlags
	optionsTerm    string
	optionsFormat  string
	optionsTimeout time.Duration
)

func init() {
	optionsFlags.register(optionsCmd)
	optionsCmd.Flags().StringVarP(&optionsTerm, "term", "t", "", "Search term")
	optionsCmd.Flags().StringVar(&optionsFormat, "format", ui.FormatTable, "Output format (table, compact, json)")
	optionsCmd.Flags().DurationVar(&optionsTimeout, "timeout", 30*time.Second, "Give up waiting for remote options after this long")
	rootCmd.AddCommand(optionsCmd)
}

// optionsCmd lists the options a widget would show
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options a widget would show",
	Long: `Run a widget without a terminal UI and print the options it shows,
optionally after searching for a term. Remote sources are fetched exactly as
the picker would fetch them.`,
	Example: `  # List a widget's options
  selectbox options --config country.yaml

  # Search a remote source
  selectbox options --endpoint http://localhost:8089/options --term-query q --term ger

  # JSON output for scripting
  selectbox options -o a=Apple -o b=Banana --term an --format json`,
	RunE: runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	cfg, err := optionsFlags.build(cmd)
	if err != nil {
		return err
	}
	loadRegistry().Preferences.Apply(cfg)
	if r := cfg.Request; r != nil && optionsTerm == "" {
		// nothing would trigger a search, so load the full list
		r.Once = true
	}

	core, err := selectbox.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), optionsTimeout)
	defer cancel()

	d := runner.New(core, runner.Options{})
	if err := d.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = d.Stop() }()

	if optionsTerm != "" {
		if err := d.Send(selectbox.SearchInput{Term: optionsTerm, Raw: optionsTerm}); err != nil {
			return err
		}
	}
	if err := d.WaitIdle(ctx); err != nil {
		return fmt.Errorf("waiting for options: %w", err)
	}

	view, err := d.View()
	if err != nil {
		return err
	}
	if view.Error != nil {
		return errors.New(view.Error.Text("failed to load options"))
	}
	return ui.NewPrinter(nil).PrintOptions(view.Options, view.Value, optionsFormat)
}
