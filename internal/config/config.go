// Package config holds hologram's configuration: TOML file with defaults
// for everything, so a missing config file is the normal case.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all hologram configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Ranking     RankingConfig     `toml:"ranking"`
	Pressure    PressureConfig    `toml:"pressure"`
	Checkpoints CheckpointsConfig `toml:"checkpoints"`
	Plans       PlansConfig       `toml:"plans"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type RankingConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
}

type PressureConfig struct {
	TouchIncrement float64 `toml:"touch_increment"`
	DecayRate      float64 `toml:"decay_rate"`
}

type CheckpointsConfig struct {
	Dir string `toml:"dir"`
}

type PlansConfig struct {
	// Dir is resolved relative to the project working directory.
	Dir string `toml:"dir"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37791,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Ranking: RankingConfig{
			TimeoutMS: 2000,
		},
		Pressure: PressureConfig{
			TouchIncrement: 0.15,
			DecayRate:      0.1,
		},
		Checkpoints: CheckpointsConfig{
			Dir: "", // resolved at runtime under the data dir
		},
		Plans: PlansConfig{
			Dir: ".hologram/plans",
		},
	}
}

// DataDir returns ~/.hologram, creating it if needed.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".hologram")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// Load reads config from path. A missing file yields the defaults; a present
// but unparseable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault reads ~/.hologram/config.toml.
func LoadDefault() (Config, error) {
	dir, err := DataDir()
	if err != nil {
		return Default(), err
	}
	return Load(filepath.Join(dir, "config.toml"))
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// RankingTimeout returns the ranking timeout as a duration.
func (c *Config) RankingTimeout() time.Duration {
	return time.Duration(c.Ranking.TimeoutMS) * time.Millisecond
}

// CheckpointDir resolves the checkpoint directory, defaulting to
// <data dir>/checkpoints.
func (c *Config) CheckpointDir() (string, error) {
	if c.Checkpoints.Dir != "" {
		return c.Checkpoints.Dir, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "checkpoints"), nil
}

// PlansDir resolves the plan directory for a project working directory.
func (c *Config) PlansDir(cwd string) string {
	if filepath.IsAbs(c.Plans.Dir) {
		return c.Plans.Dir
	}
	return filepath.Join(cwd, c.Plans.Dir)
}
