package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"naamd/internal/config"
	"naamd/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var (
		cfgPath     string
		addr        string
		modelDir    string
		modelURL    string
		timeoutSec  int
		cacheSize   int
		logLevel    string
		corsEnabled bool
		corsOrigins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the prediction HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags win over config file values; config fills the gaps.
			if cfg.Addr == "" || cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cfg.ModelDir == "" || cmd.Flags().Changed("model-dir") {
				cfg.ModelDir = modelDir
			}
			if cfg.ModelURL == "" || cmd.Flags().Changed("model-url") {
				cfg.ModelURL = modelURL
			}
			if cfg.DownloadTimeoutSeconds == 0 || cmd.Flags().Changed("download-timeout") {
				cfg.DownloadTimeoutSeconds = timeoutSec
			}
			if cfg.ResultCacheSize == 0 || cmd.Flags().Changed("cache-size") {
				cfg.ResultCacheSize = cacheSize
			}
			if cfg.LogLevel == "" || cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("cors-enabled") {
				cfg.CORSEnabled = corsEnabled
			}
			if cmd.Flags().Changed("cors-origins") {
				cfg.CORSOrigins = corsOrigins
			}
			return runServer(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Config file (.yaml, .json or .toml)")
	cmd.Flags().StringVar(&addr, "addr", envOr("NAAMD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&modelDir, "model-dir", defaultModelDir(), "Directory holding downloaded model bundles")
	cmd.Flags().StringVar(&modelURL, "model-url", "", "Model bundle URL (defaults to NAAMD_MODEL_URL or the published bundle)")
	cmd.Flags().IntVar(&timeoutSec, "download-timeout", 120, "Model download timeout in seconds")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "Per-name LRU result cache size (0 disables)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&corsEnabled, "cors-enabled", false, "Enable CORS")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origins", nil, "Allowed CORS origins")
	return cmd
}

func runServer(cfg config.Config) error {
	log := newLogger(cfg.LogLevel)
	cache := newCache(cfg.ModelDir, cfg.ModelURL,
		time.Duration(cfg.DownloadTimeoutSeconds)*time.Second, cfg.ResultCacheSize, log)

	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(cache)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("model_dir", cfg.ModelDir).Msg("naamd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
