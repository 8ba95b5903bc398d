package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/maloquacious/solicitreview/internal/config"
	"github.com/maloquacious/solicitreview/internal/logger"
	"github.com/maloquacious/solicitreview/internal/prompt"
	"github.com/maloquacious/solicitreview/internal/review"
	"github.com/maloquacious/solicitreview/internal/store"
	"github.com/maloquacious/solicitreview/internal/store/memory"
	"github.com/maloquacious/solicitreview/internal/store/redisstore"
	"github.com/maloquacious/solicitreview/internal/store/sqlite"
	release "github.com/maloquacious/solicitreview/internal/version"
)

// app is the composed host: configuration, collaborators and the tracker.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	kv       store.KV
	ready    func(ctx context.Context) error
	close    func() error
	versions release.Provider
	tracker  *review.Tracker
	appName  string
	lang     language.Tag
}

func (a *app) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// loadConfig reads the environment and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("checkpoint") {
		cfg.CheckpointCount = checkpointFlag
	}
	if flags.Changed("app-version") {
		cfg.AppVersion = appVersionFlag
	}
	if flags.Changed("store") {
		cfg.Backend = storeFlag
	}
	if flags.Changed("store-path") {
		cfg.StorePath = storePathFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, lang: cfg.LanguageTag()}
	if err := a.openStore(); err != nil {
		return nil, err
	}

	a.versions = newVersionProvider(cfg, log)
	a.appName = resolveAppName(cfg)
	if !prompt.Supported(a.lang) {
		log.Debug("no prompt translation for %s, using English", a.lang)
	}

	if cfg.CheckpointCount <= 0 {
		log.Warn("checkpoint count %d disables review prompts", cfg.CheckpointCount)
	}
	a.tracker = review.New(cfg.CheckpointCount, a.kv, a.versions, review.WithLogger(log))
	return a, nil
}

func (a *app) openStore() error {
	switch a.cfg.Backend {
	case config.BackendMemory:
		a.kv = memory.New()
		return nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		rs := redisstore.New(client, a.cfg.RedisPrefix)
		a.kv, a.ready, a.close = rs, rs.Ping, rs.Close
		return nil

	case config.BackendSQLite:
		exists, err := store.CheckExists(a.cfg.StorePath)
		if err != nil {
			return err
		}
		s := sqlite.New(store.GetDBPath(a.cfg.StorePath), schemaVersion)
		if err := s.Open(); err != nil {
			return err
		}
		if !exists {
			a.log.Info("creating datastore %s", store.GetDBPath(a.cfg.StorePath))
			if err := s.InitSchema(schemaVersion); err != nil {
				s.Close()
				return err
			}
		}
		state, err := s.CheckState()
		if err != nil {
			s.Close()
			return err
		}
		if state != store.StateReady {
			s.Close()
			return fmt.Errorf("datastore is %s; run \"app db upgrade\"", state)
		}
		a.kv, a.close = s, s.Close
		a.ready = func(context.Context) error {
			state, err := s.CheckState()
			if err != nil {
				return err
			}
			if state != store.StateReady {
				return fmt.Errorf("datastore is %s", state)
			}
			return nil
		}
		return nil
	}
	return fmt.Errorf("unknown store backend %q", a.cfg.Backend)
}

// newVersionProvider prefers SOLICIT_APP_VERSION, then the bundle file. A
// host without a bundle reports this binary's own build version.
func newVersionProvider(cfg *config.Config, log logger.Logger) release.Provider {
	if cfg.AppVersion != "" {
		return release.Static(cfg.AppVersion)
	}
	if _, err := os.Stat(cfg.BundlePath); err == nil {
		return release.File{Path: cfg.BundlePath, Log: log}
	}
	log.Debug("bundle %s not found, using build version %s", cfg.BundlePath, version.String())
	return release.Semver{Version: version}
}

// resolveAppName prefers SOLICIT_APP_NAME, then the bundle's name.
func resolveAppName(cfg *config.Config) string {
	if cfg.AppName != "" {
		return cfg.AppName
	}
	if b, err := release.LoadBundle(cfg.BundlePath); err == nil {
		return b.AppName()
	}
	return "this app"
}
