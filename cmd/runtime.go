package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/nodaysoff/internal/config"
	"github.com/abhisek/nodaysoff/internal/identity"
	"github.com/abhisek/nodaysoff/internal/logging"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/store/pgstore"
)

// runtime is everything a command needs once config, logging, identity and
// storage are resolved.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	identity identity.Identity
	records  store.RecordRepo
	events   store.EventRepo
	closers  []func() error
}

// Close releases storage and the log file in reverse order.
func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// openRuntime loads config and opens the configured store. Interactive runs
// log to a file because the TUI owns the terminal.
func openRuntime(cmd *cobra.Command, interactive bool) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logFile := cfg.Logging.File
	if interactive && logFile == "" {
		logFile = filepath.Join(dataDir, "nodaysoff.log")
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: logFile})
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	rt.identity, err = identity.Resolve(cfg.Profile.UserID, dataDir)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	var records store.RecordRepo
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, err := pgstore.Open(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		rt.closers = append(rt.closers, func() error { pg.Close(); return nil })
		records, rt.events = pg.RecordRepo(), pg.EventRepo()
	default:
		path, err := sqlitePath(cfg.Storage.Path)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.closers = append(rt.closers, st.Close)
		records, rt.events = st.RecordRepo(), st.EventRepo()
	}

	rt.records = store.WithRetry(store.WithLogging(records, logger), rt.retry())
	logger.DebugContext(ctx, "runtime ready",
		"backend", cfg.Storage.Backend, "user_id", rt.identity.UserID, "config", cfgPath)
	return rt, nil
}

func sqlitePath(configured string) (string, error) {
	if configured == "" {
		return store.DefaultDBPath()
	}
	return configured, store.EnsureDir(configured)
}

func (r *runtime) retry() store.RetryConfig {
	return store.RetryConfig(r.cfg.Retry)
}

// tracker loads the user's record and wraps it in a session tracker.
func (r *runtime) tracker(ctx context.Context) (*session.Tracker, error) {
	rec, err := session.LoadRecord(ctx, r.records, r.identity.UserID, r.logger)
	if err != nil {
		return nil, err
	}
	return session.NewTracker(r.identity.UserID, rec, r.records,
		session.WithHistory(r.events),
		session.WithClock(r.identity.Now),
		session.WithLogger(r.logger)), nil
}
