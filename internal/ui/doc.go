// Package ui provides terminal output components for the selectbox CLI.
//
// Unlike the interactive widget in package tui, these components follow a
// "print once and exit" pattern: headers for long-running commands, result
// boxes for outcomes, and option lists in table, compact or JSON form.
//
// Commands print through a Printer:
//
//	p := ui.NewPrinter(nil)
//	p.PrintHeader(ui.NewHeader("Options Server", "selectbox serve",
//	    ui.Param{Key: "Address", Value: ":8089"}))
//	_ = p.PrintOptions(options, value, ui.FormatTable)
//
// # Logging Integration
//
// This package expects logging to be controlled via the SELECTBOX_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent so the
// styled output is displayed cleanly.
package ui
