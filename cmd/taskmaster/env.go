package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/store"
)

// env holds what every command opens before it runs.
type env struct {
	cfgPath     string
	cfg         *model.AppConfig
	db          *store.SQLiteStore
	persistence *store.Persistence
	logger      *slog.Logger
	logFile     *os.File
}

// openEnv loads the config, opens the log file and the database.
func openEnv() (*env, error) {
	e := &env{cfgPath: configPath}
	if e.cfgPath == "" {
		e.cfgPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(e.cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	e.cfg = cfg

	if err := e.openLog(); err != nil {
		return nil, err
	}

	db, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("opening store %s: %w", cfg.Storage.Path, err)
	}
	e.db = db
	e.persistence = store.NewPersistence(db, e.logger)
	e.logger.Info("opened store", "path", cfg.Storage.Path, "config", e.cfgPath)

	return e, nil
}

// openLog points the logger at a file; the terminal belongs to the UI.
func (e *env) openLog() error {
	path := logPath
	if path == "" {
		path = filepath.Join(filepath.Dir(e.cfg.Storage.Path), "taskmaster.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	e.logFile = f
	e.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// Close releases the database and the log file.
func (e *env) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	if e.logFile != nil {
		errs = append(errs, e.logFile.Close())
	}
	return errors.Join(errs...)
}
