// Selectbox is a terminal single-select dropdown.
//
// It loads options from a widget definition, command-line flags or a remote
// endpoint, lets the user pick one, and prints the chosen value. It also
// ships a demo option source to search against.
//
// Usage:
//
//	selectbox [command] [flags]
//
// Running without a command opens the interactive picker.
// See 'selectbox --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/ui"
	"github.com/muurk/selectbox/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, errNoSelection):
		case ui.IsTerminal():
			ui.NewPrinter(os.Stderr).PrintError("selectbox "+commandName(), err)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logging.Sync()
		os.Exit(1)
	}
}

var logLevel string

// commandName returns the subcommand named on the command line, or "pick".
func commandName() string {
	cmd, _, err := rootCmd.Find(os.Args[1:])
	if err != nil || cmd == rootCmd {
		return "pick"
	}
	return cmd.Name()
}

var rootCmd = &cobra.Command{
	Use:   "selectbox",
	Short: "Terminal single-select dropdown",
	Long: `A single-select dropdown for the terminal.

Options come from a widget definition file, from --option flags, or from a
remote HTTP or WebSocket endpoint searched as you type. The chosen value is
printed to stdout so it can be captured by scripts.

If no command is specified, the interactive picker will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	RunE: runPick,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.LogLevelEnvVar)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("selectbox %s\n", version.Full())
	},
}
