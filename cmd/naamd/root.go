package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"naamd/pkg/artifact"
	"naamd/pkg/naam"
)

// usageError marks argument problems so Execute can exit with code 2,
// matching the usual argument-parser convention.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:           "naamd",
	Short:         "Predict religion from personal names (English or Hindi)",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newServeCmd())
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 2 for malformed arguments, 1 for any other failure.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

// defaultModelDir is where downloaded bundles live unless overridden.
func defaultModelDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "naamd", "models")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

// newCache wires the fetcher and lifecycle cache from CLI-level settings.
func newCache(modelDir, modelURL string, timeout time.Duration, cacheSize int, log zerolog.Logger) *naam.Cache {
	return naam.NewCache(naam.CacheOptions{
		Fetcher:         artifact.New(modelURL, timeout, log),
		ModelDir:        modelDir,
		ResultCacheSize: cacheSize,
		Logger:          log,
	})
}
