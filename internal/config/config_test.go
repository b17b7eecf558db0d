package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

// isolate points the user config dir at an empty temp dir and runs from an
// empty working directory so no stray pkgmeta.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("PKGMETA_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("packages_dir"); got != "packages" {
		t.Errorf("packages_dir default = %q, want %q", got, "packages")
	}
	if got := viper.GetString("source_branch"); got != "master" {
		t.Errorf("source_branch default = %q, want %q", got, "master")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := isolate(t)
	content := []byte("packages_dir: plugins\noutput: docs/metadata.toml\nconcurrency: 4\n")
	if err := os.WriteFile(filepath.Join(dir, "pkgmeta.yaml"), content, 0600); err != nil {
		t.Fatal(err)
	}
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PackagesDir != "plugins" {
		t.Errorf("PackagesDir = %q, want plugins", cfg.PackagesDir)
	}
	if cfg.Output != "docs/metadata.toml" {
		t.Errorf("Output = %q, want docs/metadata.toml", cfg.Output)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
	if cfg.ManifestFile != "package.json" {
		t.Errorf("ManifestFile = %q, want default package.json", cfg.ManifestFile)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("PKGMETA_SOURCE_BRANCH", "main")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SourceBranch != "main" {
		t.Errorf("SourceBranch = %q, want main", cfg.SourceBranch)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	if _, err := Load("/non/existent/path/pkgmeta.yaml"); err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unsupported version", "version: 2\n", ErrUnsupportedVersion},
		{"metadata file with directory", "metadata_file: meta/metadata.toml\n", ErrInvalidFileName},
		{"negative concurrency", "concurrency: -1\n", ErrNegativeConcurrency},
		{"empty source branch", "source_branch: \"\"\n", ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "custom.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			Init()

			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Validate(Default()) = %v, want no errors", errs)
	}

	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) returned %d errors, want 1", len(errs))
	}

	cfg := Default()
	cfg.Version = 0
	cfg.ManifestFile = ".."
	cfg.Output = ""
	errs := Validate(cfg)
	if len(errs) != 3 {
		t.Fatalf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
	var fieldErr *FieldError
	if !errors.As(errs[0], &fieldErr) || fieldErr.Field != "version" {
		t.Errorf("first error = %v, want version FieldError", errs[0])
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := Default()
	root := filepath.FromSlash("/repo")

	if got, want := cfg.PackagesPath(root), filepath.Join(root, "packages"); got != want {
		t.Errorf("PackagesPath() = %q, want %q", got, want)
	}
	if got, want := cfg.OutputPath(root), filepath.Join(root, "metadata.toml"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}
