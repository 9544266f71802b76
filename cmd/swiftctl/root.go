package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/apiclient"
	"github.com/swiftapp/staff-service/internal/config"
	"github.com/swiftapp/staff-service/internal/observability"
	"github.com/swiftapp/staff-service/internal/roster"
	"github.com/swiftapp/staff-service/internal/session"
	"github.com/swiftapp/staff-service/internal/staffapi"
)

var errMockUnsupported = errors.New("not available in mock mode")

// app carries the state shared by every subcommand. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	mock    bool
	baseURL string
	output  string
	verbose bool

	out     io.Writer
	errOut  io.Writer
	cfg     config.ClientConfig
	logger  *zap.Logger
	client  *apiclient.Client
	closers []func() error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "swiftctl",
		Short: "Manage the Swift App staff roster",
		Long: `swiftctl talks to the Swift staff service.

Available commands:
  login    - Sign in and store the session
  logout   - Revoke and forget the session
  staff    - List, invite, search, add, update and remove staff
  calendar - Show jobs per day for a date range`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&a.mock, "mock", false, "Use the built-in sample roster instead of the server (or set CLIENT_USE_MOCK)")
	flags.StringVar(&a.baseURL, "base-url", "", "Server URL (or set CLIENT_BASE_URL)")
	flags.StringVarP(&a.output, "output", "o", "table", "Output format: table, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newLoginCmd(a), newLogoutCmd(a), newStaffCmd(a), newCalendarCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()

	switch a.output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg.Client
	if a.mock {
		a.cfg.UseMock = true
	}
	if a.baseURL != "" {
		a.cfg.BaseURL = a.baseURL
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = observability.NewCLILogger(level)

	store, err := a.sessionStore(cfg.Redis)
	if err != nil {
		return err
	}
	a.client, err = apiclient.New(apiclient.Options{
		BaseURL: a.cfg.BaseURL,
		Timeout: a.cfg.Timeout(),
		Session: store,
		Logger:  a.logger,
	})
	return err
}

func (a *app) sessionStore(redisCfg config.RedisConfig) (session.Store, error) {
	if a.cfg.SessionStore != "redis" {
		return session.NewFileStore(a.cfg.SessionFile, a.cfg.SessionNS), nil
	}
	if redisCfg.Addr == "" {
		return nil, errors.New("CLIENT_SESSION_STORE=redis requires REDIS_ADDR")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	a.closers = append(a.closers, client.Close)
	return session.NewRedisStore(client, a.cfg.SessionNS), nil
}

// rosterStore picks the data source once. API mode falls back to the sample
// roster when the server cannot be reached.
func (a *app) rosterStore() *roster.Store {
	if a.cfg.UseMock {
		return roster.NewStore(roster.NewFixtureSource(nil, a.cfg.MockDelay()), roster.WithLogger(a.logger))
	}
	return roster.NewStore(
		roster.NewAPISource(staffapi.New(a.client)),
		roster.WithFallback(roster.NewFixtureSource(nil, 0)),
		roster.WithLogger(a.logger),
	)
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && a.logger != nil {
			a.logger.Debug("close", zap.Error(err))
		}
	}
	a.closers = nil
}
