// Package logging provides structured logging for selectbox.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is passed to Initialize or set through the
// SELECTBOX_LOG_LEVEL environment variable, so the terminal widget is never
// disturbed by log output.
//
// # Log Levels
//
//   - Debug: fetch dispatch, stale results, WebSocket frames
//   - Info: selection changes, demo server requests
//   - Warn: usage warnings and failed fetches
//   - Error: startup failures
//
// # Specialized Logging
//
//	logging.LogFetch(name, gen, url)
//	logging.LogFetchResult(name, gen, len(items), err)
//	logging.LogSelection(name, value)
//	logging.LogUsageWarning(name, "uncontrolled-value", msg)
//
// # Configuration
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Output goes to stderr in console format.
package logging
