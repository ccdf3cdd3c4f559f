package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"contactd/internal/config"
	"contactd/internal/directory"
	"contactd/internal/httpapi"
	"contactd/internal/naming"
	"contactd/internal/observer"
	"contactd/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "contactd:", err)
		os.Exit(1)
	}
}

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	var (
		configPath      string
		addr            string
		logLevel        string
		dirName         string
		observerURLs    string
		observerTimeout int
	)

	root := &cobra.Command{
		Use:           "contactd",
		Short:         "Contact directory daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			// Flags win over the config file; env seeds the flag defaults.
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("directory-name") || cfg.DirectoryName == "" {
				cfg.DirectoryName = dirName
			}
			if cmd.Flags().Changed("observers") && observerURLs != "" {
				cfg.Observers = splitCSV(observerURLs)
			}
			if cmd.Flags().Changed("observer-timeout") || cfg.ObserverTimeoutSeconds == 0 {
				cfg.ObserverTimeoutSeconds = observerTimeout
			}
			return runServe(cfg)
		},
	}

	serve.Flags().StringVarP(&configPath, "config", "c", envOr("CONTACTD_CONFIG", ""), "Path to config file (.yaml/.json/.toml)")
	serve.Flags().StringVar(&addr, "addr", envOr("CONTACTD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	serve.Flags().StringVar(&logLevel, "log-level", envOr("CONTACTD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	serve.Flags().StringVar(&dirName, "directory-name", envOr("CONTACTD_DIRECTORY_NAME", ""), "Logical name the directory servant is bound under")
	serve.Flags().StringVar(&observerURLs, "observers", envOr("CONTACTD_OBSERVERS", ""), "Comma-separated webhook URLs subscribed at startup")
	serve.Flags().IntVar(&observerTimeout, "observer-timeout", 5, "Per-delivery notification timeout in seconds")
	root.AddCommand(serve)

	return root
}

func runServe(cfg config.Config) error {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()

	seed := cfg.Seed
	if len(seed) == 0 {
		seed = directory.DefaultSeed()
	}

	hub := observer.NewHub(time.Duration(cfg.ObserverTimeoutSeconds)*time.Second, logger)
	dir := directory.New(seed)
	dir.SetEventPublisher(hub)
	reg := naming.New()

	for _, u := range cfg.Observers {
		// startup subscriptions use the URL itself as the handle
		hub.Subscribe(types.ObjectRef{Name: u, Handle: u}, observer.NewWebhook(u, nil))
	}

	httpapi.SetLogger(logger)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)

	srvCore, err := httpapi.NewServer(dir, reg, hub, cfg.DirectoryName)
	if err != nil {
		return fmt.Errorf("wire server: %w", err)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	hub.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: srvCore.Handler()}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Int("seed", len(seed)).Msg("contactd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
