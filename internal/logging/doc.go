// Package logging provides structured logging for the pkgmeta CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Context
//
// Commands store the configured logger in their context with [NewContext];
// library code retrieves it with [FromContext], which falls back to
// [slog.Default].
//
// # Log File
//
// Setting [Config.File] adds a JSON sink next to the primary output; both are
// driven through a [MultiHandler]:
//
//	logger := logging.New(logging.Config{Level: level, Output: os.Stderr, File: f})
package logging
