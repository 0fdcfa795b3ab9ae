package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexfield/poemcoder/internal/clock/system"
	"github.com/lexfield/poemcoder/internal/config"
	"github.com/lexfield/poemcoder/internal/fetch"
	"github.com/lexfield/poemcoder/internal/logging"
	"github.com/lexfield/poemcoder/internal/parse"
	"github.com/lexfield/poemcoder/internal/poem"
	"github.com/lexfield/poemcoder/internal/store"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App is the service surface commands use. Keeping it an interface lets
// tests inject a fake application.
type App interface {
	Config() config.Config
	Logger() *zap.Logger
	Fetcher() poem.Fetcher
	Parser() poem.Parser
	Store() poem.Store
	Close()
}

// application wires the pipeline components from configuration.
type application struct {
	cfg     config.Config
	logger  *zap.Logger
	fetcher poem.Fetcher
	parser  poem.Parser
	store   poem.Store
}

func (a *application) Config() config.Config { return a.cfg }
func (a *application) Logger() *zap.Logger   { return a.logger }
func (a *application) Fetcher() poem.Fetcher { return a.fetcher }
func (a *application) Parser() poem.Parser   { return a.parser }
func (a *application) Store() poem.Store     { return a.store }

func (a *application) Close() {
	_ = a.logger.Sync()
}

// newApp is the application factory. It is a variable so tests can swap in
// a mock factory.
var newApp = func(_ context.Context) (App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cache, err := fetch.NewCache(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	client := fetch.NewCollyClient(fetch.ClientConfig{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.Timeout(),
	})
	policy := fetch.RetryPolicy{MaxAttempts: cfg.HTTP.MaxAttempts}
	fetcher := fetch.New(client, cache, policy, system.New(), logger)

	st, err := store.New(cfg.Records.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	return &application{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		parser:  parse.New(),
		store:   st,
	}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poemcoder",
		Short: "Fetch, parse, and code poems from poets.org",
		Long: `poemcoder is a qualitative-coding pipeline for poems. It fetches poem
pages through a disk cache, extracts metadata and stanza-preserving text,
and records coding decisions in an append-only log with a CSV snapshot.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env and defaults apply without one)")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newResumeCmd())
	cmd.AddCommand(newRebuildCmd())

	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
