// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/shellfront/internal/complete"
)

// Config holds the global shellfront configuration.
type Config struct {
	Completion CompletionConfig         `yaml:"completion"`
	Commands   map[string]CommandConfig `yaml:"commands"`
	History    HistoryConfig            `yaml:"history"`
	Log        LogConfig                `yaml:"log"`
}

// CompletionConfig controls the completion engine.
type CompletionConfig struct {
	MaxEntries int    `yaml:"max_entries"`
	Script     string `yaml:"script"` // optional Starlark registration script
}

// CommandConfig describes a command offered for completion.
type CommandConfig struct {
	Description string   `yaml:"description"`
	Flags       []string `yaml:"flags"`
}

// HistoryConfig controls the history file.
type HistoryConfig struct {
	Path       string `yaml:"path"`
	MaxResults int    `yaml:"max_results"`
	Window     int    `yaml:"window"` // recent lines searched by history completion
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Completion: CompletionConfig{
			MaxEntries: complete.DefaultMaxEntries,
		},
		History: HistoryConfig{
			Path:       filepath.Join(home, ".local", "share", "shellfront", "history.jsonl"),
			MaxResults: 20,
			Window:     complete.DefaultHistoryWindow,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the config from the standard location (~/.config/shellfront/config.yaml).
// If the file doesn't exist, returns the default config.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Completion.Script = expandHome(cfg.Completion.Script)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Completion.MaxEntries < 0 {
		return fmt.Errorf("completion.max_entries must not be negative")
	}
	if c.History.Window < 0 {
		return fmt.Errorf("history.window must not be negative")
	}
	if c.History.MaxResults < 0 {
		return fmt.Errorf("history.max_results must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	for name := range c.Commands {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("commands: empty command name")
		}
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// EngineOptions returns the completion engine options implied by the config.
func (c *Config) EngineOptions() []complete.Option {
	return []complete.Option{
		complete.WithMaxEntries(c.Completion.MaxEntries),
		complete.WithHistoryWindow(c.History.Window),
	}
}

// Apply registers the configured commands on e and runs the completion
// script, if any. Configured commands are registered before the script
// runs, so the script has the last word.
func (c *Config) Apply(e *complete.Engine) error {
	for name, cmd := range c.Commands {
		e.RegisterCommand(complete.Command{
			Name:        name,
			Description: cmd.Description,
			Flags:       cmd.Flags,
		})
	}
	if c.Completion.Script != "" {
		if err := e.LoadScript(c.Completion.Script); err != nil {
			return err
		}
	}
	return nil
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "shellfront", "config.yaml")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
