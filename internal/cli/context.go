package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/config"
	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/logging"
	"github.com/artisanexperiences/swapfs/internal/provider"
)

// CommandContext carries what every subcommand needs: the resolved
// configuration, the file system it selects and a logger.
type CommandContext struct {
	Dir    string
	Config *config.Config
	FS     fs.FileSystem
	Logger *log.Logger
	Out    io.Writer
}

// OpenContext loads configuration from --config-dir (or the working
// directory), applies flag overrides and builds the backend.
func OpenContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, dir, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	fsys, err := provider.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	return &CommandContext{
		Dir:    dir,
		Config: cfg,
		FS:     fsys,
		Logger: logger,
		Out:    cmd.OutOrStdout(),
	}, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	dir := mustGetString(cmd, "config-dir")
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = cwd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	if backend := mustGetString(cmd, "backend"); backend != "" {
		b, err := config.ParseBackend(backend)
		if err != nil {
			return nil, "", err
		}
		cfg.Backend = b
	}
	if fixture := mustGetString(cmd, "fixture"); fixture != "" {
		cfg.Fixture = fixture
	}
	if level := mustGetString(cmd, "log-level"); level != "" {
		cfg.LogLevel = level
	}
	switch {
	case mustGetBool(cmd, "verbose"):
		cfg.LogLevel = "debug"
	case mustGetBool(cmd, "quiet"):
		cfg.LogLevel = "error"
	}

	return cfg, dir, nil
}

// DefaultRoot is where commands start when no path argument is given: the
// virtual root for the memory backend, the config directory on disk.
func (cc *CommandContext) DefaultRoot() string {
	if cc.Config.Backend == config.BackendMemory {
		return "/"
	}
	return cc.Dir
}

// Interactive reports whether prompts may be shown.
func (cc *CommandContext) Interactive(cmd *cobra.Command) bool {
	return !mustGetBool(cmd, "no-interactive") && isInteractive()
}
