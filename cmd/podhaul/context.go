package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"podhaul/internal/config"
	"podhaul/internal/logging"
)

// commandContext carries lazily-initialized shared state between commands.
type commandContext struct {
	configFlag   *string
	dbFlag       *string
	jsonFlag     *bool
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, dbFlag *string, jsonFlag *bool, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		dbFlag:       dbFlag,
		jsonFlag:     jsonFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		format := cfg.Logging.Format
		if !isatty.IsTerminal(os.Stderr.Fd()) && format == "console" {
			// Piped output still gets parseable lines.
			format = "json"
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:    level,
			Format:   format,
			FilePath: cfg.LogFilePath(),
		})
	})
	return c.logger, c.loggerErr
}

// databasePath resolves the library database flag against the config file.
// Empty means the platform default.
func (c *commandContext) databasePath() string {
	if c.dbFlag != nil && strings.TrimSpace(*c.dbFlag) != "" {
		return strings.TrimSpace(*c.dbFlag)
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.Paths.LibraryDB
	}
	return ""
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}
