package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oarkflow/log"
	"github.com/urfave/cli/v2"

	"github.com/gosuda/kode/config"
	kruntime "github.com/gosuda/kode/runtime"
)

type appConfig struct {
	file     string
	settings config.Config
	logger   *log.Logger
	cache    *kruntime.ModuleCache
}

type vmStartedMsg struct {
	events <-chan tea.Msg
}

type vmOutputMsg struct {
	out kruntime.Output
}

type vmDoneMsg struct {
	result kruntime.Value
	err    error
}

type vmPollMsg struct{}

// loadAppConfig resolves the settings shared by every command. The config
// file is taken from --config, else searched next to FILE, else in the
// working directory.
func loadAppConfig(c *cli.Context, needFile bool) (appConfig, error) {
	cfg := appConfig{file: c.Args().First()}
	if needFile && cfg.file == "" {
		return cfg, fmt.Errorf("%s: missing FILE argument", c.Command.Name)
	}

	settings := config.Default()
	path := c.String("config")
	if path == "" {
		dir := "."
		if cfg.file != "" {
			dir = filepath.Dir(cfg.file)
		}
		path, _ = config.Find(dir)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		settings = loaded
	}
	if dir := c.String("modules"); dir != "" {
		settings.ModuleDir = dir
	}
	if lvl := c.String("log-level"); lvl != "" {
		settings.LogLevel = lvl
	}
	cfg.settings = settings

	level, err := parseLevel(settings.LogLevel)
	if err != nil {
		return cfg, err
	}
	cfg.logger = &log.Logger{
		Level:  level,
		Writer: &log.IOWriter{Writer: os.Stderr},
	}

	cfg.cache, err = kruntime.NewModuleCache(settings.ModuleCacheSize)
	if err != nil {
		return cfg, fmt.Errorf("module cache: %w", err)
	}
	return cfg, nil
}

func parseLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "", "error":
		return log.ErrorLevel, nil
	default:
		return log.ErrorLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// moduleDir is the configured import directory, or the directory of the
// program being run.
func (cfg appConfig) moduleDir() string {
	if cfg.settings.ModuleDir != "" {
		return cfg.settings.ModuleDir
	}
	if cfg.file != "" {
		return filepath.Dir(cfg.file)
	}
	return "."
}

func (cfg appConfig) options() kruntime.Options {
	return kruntime.Options{
		Modules:      kruntime.DirSource{Dir: cfg.moduleDir()},
		MaxCallDepth: cfg.settings.MaxCallDepth,
		Logger:       cfg.logger,
		Cache:        cfg.cache,
	}
}
