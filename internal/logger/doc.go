// Package logger builds the zap loggers used by the demo and handed to the
// library types.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//   - OutputPath: a file path, "stdout" or "stderr"
//
// A terminal UI owns the terminal, so interactive programs should log to a
// file.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", OutputPath: "demo.log"})
//	adapter := properlist.NewAdapter(properlist.WithLogger(log))
package logger
