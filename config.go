package main

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the server options. Each option can be set on the command
// line, through the environment, or in a .env file.
type Config struct {
	Host            string        `long:"host" env:"HOST" default:"0.0.0.0" description:"Interface to listen on"`
	Port            int           `short:"p" long:"port" env:"PORT" default:"3030" description:"Port to listen on"`
	LogLevel        string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`
	LogFormat       string        `long:"log-format" env:"LOG_FORMAT" default:"json" choice:"json" choice:"console" description:"Log encoding"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"5s" description:"Graceful shutdown timeout"`
	Version         bool          `long:"version" description:"Print the version and exit"`
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// loadConfig reads envFile (if it exists) into the environment and parses
// args. Variables already present in the environment are not overridden.
func loadConfig(args []string, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading %s", envFile)
		}
	}

	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, errors.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.Errorf("shutdown timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	return cfg, nil
}

// newLogger builds a zap logger from the log options.
func newLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	zcfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}
