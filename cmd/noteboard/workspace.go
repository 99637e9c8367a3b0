package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/config"
	"github.com/kingrea/noteboard/internal/logging"
	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
)

// workspace wires config, log file, API client and store for one command.
type workspace struct {
	cfg    *config.Config
	logger *logging.Logger
	client *api.Client
	store  *store.Store

	// timeout bounds each API call. It comes from the resolved client
	// settings so NOTEBOARD_API_TIMEOUT and the default apply.
	timeout time.Duration
}

func openWorkspace() (*workspace, error) {
	dir := baseDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultBaseDir(); err != nil {
			return nil, fmt.Errorf("resolve base dir: %w", err)
		}
	}
	if err := config.InitDir(dir); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", config.Dir, err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.File.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	settings := api.SettingsFromConfig(cfg).WithBaseURL(apiURL)
	client := api.NewClient(settings, api.WithLogger(logger))
	st := store.New(client, cfg.User(), note.Preferences{ViewType: cfg.ViewType()})
	logger.Debugw("workspace opened", "base_url", client.BaseURL(), "config", cfg.FilePath())
	return &workspace{cfg: cfg, logger: logger, client: client, store: st, timeout: client.Timeout()}, nil
}

// load fetches the workspace with the configured request timeout.
func (w *workspace) load(ctx context.Context) error {
	ctx, cancel := w.withTimeout(ctx)
	defer cancel()
	if err := w.store.Load(ctx); err != nil {
		w.logger.Errorw("workspace load failed", "error", err)
		return err
	}
	w.rememberUser()
	return nil
}

func (w *workspace) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := w.timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// rememberUser writes the account resolved through GET /user/me back to
// config.yaml so later runs skip the lookup.
func (w *workspace) rememberUser() {
	if w.cfg.User().ID != "" {
		return
	}
	user := w.store.User()
	if user.ID == "" {
		return
	}
	if err := w.cfg.SetUser(user); err != nil {
		w.logger.Warnw("could not save user to config", "error", err)
	}
}

func (w *workspace) Close() {
	_ = w.logger.Close()
}
