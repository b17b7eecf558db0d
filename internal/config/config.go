package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/paths"
)

// ConfigName is the base name of the configuration file (without extension).
const ConfigName = "pkgmeta"

// Config represents the top-level configuration structure.
type Config struct {
	Version      int    `mapstructure:"version" yaml:"version"`
	Root         string `mapstructure:"root" yaml:"root"`
	PackagesDir  string `mapstructure:"packages_dir" yaml:"packages_dir"`
	Output       string `mapstructure:"output" yaml:"output"`
	MetadataFile string `mapstructure:"metadata_file" yaml:"metadata_file"`
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`
	SourceBranch string `mapstructure:"source_branch" yaml:"source_branch"`
	Concurrency  int    `mapstructure:"concurrency" yaml:"concurrency"`
}

// PackagesPath returns the packages directory resolved against root.
func (c *Config) PackagesPath(root string) string {
	return paths.Join(root, c.PackagesDir)
}

// OutputPath returns the output file resolved against root.
func (c *Config) OutputPath(root string) string {
	return paths.Join(root, c.Output)
}

// Init resets Viper and installs defaults, search paths and env bindings.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName(ConfigName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("PKGMETA")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("root", ".")
	viper.SetDefault("packages_dir", paths.DefaultPackagesDir)
	viper.SetDefault("output", paths.DefaultOutputFile)
	viper.SetDefault("metadata_file", paths.DefaultMetadataFile)
	viper.SetDefault("manifest_file", paths.DefaultManifestFile)
	viper.SetDefault("source_branch", "master")
	viper.SetDefault("concurrency", 0)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			// Real read error (parsing, permissions, or explicit path missing)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or env override exists.
func Default() *Config {
	return &Config{
		Version:      1,
		Root:         ".",
		PackagesDir:  paths.DefaultPackagesDir,
		Output:       paths.DefaultOutputFile,
		MetadataFile: paths.DefaultMetadataFile,
		ManifestFile: paths.DefaultManifestFile,
		SourceBranch: "master",
	}
}

// isBaseName reports whether name is a plain file name without directories.
func isBaseName(name string) bool {
	return name != "" && filepath.Base(name) == name && name != "." && name != ".."
}
