package config

import (
	"fmt"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not 1.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidFileName indicates a per-package file name contains a path.
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrEmptyValue indicates a required setting is empty.
	ErrEmptyValue = errors.New("value must not be empty")

	// ErrNegativeConcurrency indicates a negative concurrency limit.
	ErrNegativeConcurrency = errors.New("concurrency must be >= 0")
)

// FieldError reports a validation failure for a single field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: fmt.Sprint(cfg.Version), Err: ErrUnsupportedVersion})
	}

	required := []struct{ field, value string }{
		{"packages_dir", cfg.PackagesDir},
		{"output", cfg.Output},
		{"source_branch", cfg.SourceBranch},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, &FieldError{Field: r.field, Err: ErrEmptyValue})
		}
	}

	if !isBaseName(cfg.MetadataFile) {
		errs = append(errs, &FieldError{Field: "metadata_file", Value: cfg.MetadataFile, Err: ErrInvalidFileName})
	}
	if !isBaseName(cfg.ManifestFile) {
		errs = append(errs, &FieldError{Field: "manifest_file", Value: cfg.ManifestFile, Err: ErrInvalidFileName})
	}

	if cfg.Concurrency < 0 {
		errs = append(errs, &FieldError{Field: "concurrency", Value: fmt.Sprint(cfg.Concurrency), Err: ErrNegativeConcurrency})
	}

	return errs
}
