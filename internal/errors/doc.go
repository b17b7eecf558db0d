// Package errors provides error handling conventions for the pkgmeta CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// that callers import a single errors package, defines sentinel errors for
// common failure conditions, and provides [ExitError] for mapping failures
// to process exit codes.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): user-related error (stale output, unknown key, bad config)
//   - ExitSystem (2): system-related error (I/O, permissions)
//
// # ExitError
//
//	err := errors.NewUserError(errors.ErrStale, "Run: pkgmeta rebuild")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
