package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/qiniu/log"

	"github.com/zephyrtronium/calc"
)

// Config is the calculator's configuration file.
type Config struct {
	// MaxDepth limits expression nesting.
	MaxDepth int `toml:"max_depth"`
	// Color enables colored results.
	Color bool `toml:"color"`
	// Echo prints parse trees before results.
	Echo bool `toml:"echo"`
	// JSON prints one JSON object per result.
	JSON bool `toml:"json"`
	// Prompt is the REPL prompt.
	Prompt string `toml:"prompt"`
	// HistoryFile is where the REPL keeps its history. Empty means
	// .calc_history in the home directory.
	HistoryFile string `toml:"history_file"`
	// DebugLevel is the log level, from 0 for debug to 3 for errors only.
	DebugLevel int `toml:"debug_level"`
}

func defaultConfig() Config {
	return Config{
		MaxDepth:   calc.DefaultMaxDepth,
		Color:      true,
		Prompt:     "calc> ",
		DebugLevel: log.Linfo,
	}
}

// loadConfig reads a TOML configuration file over the defaults. An empty path
// gives the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("couldn't read config: %w", err)
	}
	for _, k := range md.Undecoded() {
		log.Warnf("config %s: unknown key %s", path, k.String())
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Infof("loaded config from %s", path)
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, not %d", cfg.MaxDepth)
	}
	if cfg.DebugLevel < log.Ldebug || cfg.DebugLevel > log.Lerror {
		return fmt.Errorf("debug_level must be between %d and %d, not %d", log.Ldebug, log.Lerror, cfg.DebugLevel)
	}
	return nil
}

// historyPath resolves the REPL history file.
func (cfg *Config) historyPath() string {
	if cfg.HistoryFile != "" {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calc_history")
}
