// Package provider turns a loaded configuration into the FileSystem the
// rest of the program works against.
package provider

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/swapfs/internal/config"
	"github.com/artisanexperiences/swapfs/internal/fixture"
	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/logging"
)

// New builds the backend named by cfg. The memory backend is seeded from
// cfg.Fixture, which is always read from the real disk.
func New(cfg *config.Config, logger *log.Logger) (fs.FileSystem, error) {
	logger = logging.OrDiscard(logger)
	if cfg == nil {
		cfg = config.Default()
	}

	switch cfg.Backend {
	case config.BackendDisk, "":
		appName := cfg.AppName
		if appName == "" {
			appName = fs.DefaultAppName
		}
		r := fs.NewRealFS(appName)
		if cfg.UserDataPath != "" {
			r.SetUserDataPath(cfg.UserDataPath)
		}
		logger.Debug("using disk backend", "app", appName)
		return r, nil

	case config.BackendMemory:
		var opts []fs.Option
		if cfg.UserDataPath != "" {
			opts = append(opts, fs.WithUserDataPath(cfg.UserDataPath))
		}

		if cfg.Fixture == "" {
			logger.Debug("using empty memory backend")
			return fs.NewVirtualFS(opts...), nil
		}

		doc, err := fixture.Load(fs.NewRealFS(cfg.AppName), cfg.Fixture)
		if err != nil {
			return nil, err
		}
		v, err := fixture.New(doc, opts...)
		if err != nil {
			return nil, fmt.Errorf("seeding memory backend: %w", err)
		}
		logger.Debug("using memory backend", "fixture", cfg.Fixture, "entries", v.Store().Len())
		return v, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
