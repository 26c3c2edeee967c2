package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/config"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
	"github.com/classconnect-grupo3/classconnect-cli/internal/keystore"
	"github.com/classconnect-grupo3/classconnect-cli/internal/log"
	"github.com/classconnect-grupo3/classconnect-cli/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "classconnect",
	Short: "Command-line client for the ClassConnect learning platform",
	Long: `classconnect is a CLI client for the ClassConnect course-management
platform. It handles authentication, browsing and managing courses,
their modules, tasks, and exams, and searching for users.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// app bundles the shared collaborators behind every command: one config,
// one keystore, one API client, one session manager, one course cache.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *keystore.Store
	client  *api.Client
	session *session.Manager
	courses *courses.Cache
}

var sharedApp *app

// getApp lazily builds the shared application state and recovers any
// persisted session so commands start authenticated when a token exists.
func getApp() (*app, error) {
	if sharedApp != nil {
		return sharedApp, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})
	log.SetDefaultLogger(logger)

	store, err := keystore.Open(cfg.TokenStorePath(), storePassphrase())
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIURL)
	client.HTTPClient.Timeout = cfg.RequestTimeout

	manager := session.NewManager(client, store, logger)
	if err := manager.Recover(context.Background()); err != nil {
		return nil, err
	}

	sharedApp = &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		session: manager,
		courses: courses.NewCache(client, logger),
	}

	return sharedApp, nil
}

// storePassphrase returns the passphrase sealing the token store.
func storePassphrase() string {
	if v := os.Getenv("CLASSCONNECT_PASSPHRASE"); v != "" {
		return v
	}
	return "classconnect-token-store"
}

// requireSession returns the app, failing when no session is authenticated.
func requireSession() (*app, error) {
	a, err := getApp()
	if err != nil {
		return nil, err
	}
	if !a.session.Snapshot().Authenticated {
		return nil, errors.NewNotLoggedInError()
	}
	return a, nil
}
