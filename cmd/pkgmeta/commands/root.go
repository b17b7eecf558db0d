// Package commands implements the CLI commands for pkgmeta.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/pkgmeta/cmd"
	"github.com/thoreinstein/pkgmeta/internal/build"
	"github.com/thoreinstein/pkgmeta/internal/config"
	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/logging"
	"github.com/thoreinstein/pkgmeta/internal/paths"
)

// rootFlag holds the value of the --root flag.
var rootFlag string

// configFlag holds the value of the --config flag.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// loadedConfig and configLoadErr hold the result of config loading.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"repository root (default: config root, then the current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file (default: ./pkgmeta.yaml, then the user config dir)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("pkgmeta version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFlag)
}

var rootCmd = &cobra.Command{
	Use:   "pkgmeta",
	Short: "Aggregate per-package metadata into one sorted TOML file",
	Long: `pkgmeta collects the metadata.toml file of every package in a monorepo,
merges in the name, description and homepage from each package.json,
adds the curated entries for external packages and writes the sorted
result to metadata.toml at the repository root.

Running pkgmeta without a subcommand is the same as "pkgmeta rebuild".`,
	Example: `  # Regenerate metadata.toml in the current repository
  pkgmeta

  # Fail in CI when metadata.toml is out of date
  pkgmeta check

  # Inspect one entry as JSON
  pkgmeta show postcss-calc --format json

  See Also: pkgmeta list, pkgmeta show`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	RunE: runRebuild,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"),
			"Pass either -q or -v, not both")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("PKGMETA_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	cfg := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		cfg.File = f
	}
	logging.ConfigureColor(cmd.OutOrStdout())

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// currentConfig returns the loaded configuration, mapping load failures to
// a user error.
func currentConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if loadedConfig == nil {
		return config.Default(), nil
	}
	return loadedConfig, nil
}

// newBuilder resolves the repository root and returns a pipeline for it.
func newBuilder() (*build.Builder, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}

	root := cfg.Root
	if rootFlag != "" {
		root = rootFlag
	}
	abs, err := paths.ResolveRoot(root)
	if err != nil {
		return nil, errors.NewUserError(err, "Pass --root with the path of the repository")
	}
	return build.New(cfg, abs), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
