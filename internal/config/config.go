// Package config loads isekai settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// Config holds the settings shared by the CLI and the dashboard.
type Config struct {
	DataFile             string `env:"ISEKAI_DATA_FILE"`
	Engine               string `env:"ISEKAI_STORE" envDefault:"json"`
	BackupDir            string `env:"ISEKAI_BACKUP_DIR"`
	MissionRetentionDays int    `env:"ISEKAI_MISSION_RETENTION_DAYS" envDefault:"30"`
	EventRetentionDays   int    `env:"ISEKAI_EVENT_RETENTION_DAYS" envDefault:"90"`
	AutoBackup           bool   `env:"ISEKAI_AUTO_BACKUP" envDefault:"true"`
	Verbose              bool   `env:"ISEKAI_VERBOSE" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills in path defaults under the home directory.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	switch c.Engine {
	case "":
		c.Engine = EngineJSON
	case EngineJSON, EngineSQLite:
	default:
		return fmt.Errorf("unsupported store engine: %q", c.Engine)
	}
	if c.MissionRetentionDays <= 0 {
		return fmt.Errorf("mission retention must be positive, got %d", c.MissionRetentionDays)
	}
	if c.EventRetentionDays <= 0 {
		return fmt.Errorf("event retention must be positive, got %d", c.EventRetentionDays)
	}

	if c.DataFile == "" || c.BackupDir == "" {
		base, err := DefaultDataDir()
		if err != nil {
			return err
		}
		if c.DataFile == "" {
			name := "system_memory.json"
			if c.Engine == EngineSQLite {
				name = "system_memory.db"
			}
			c.DataFile = filepath.Join(base, name)
		}
		if c.BackupDir == "" {
			c.BackupDir = filepath.Join(base, "backups")
		}
	}
	return nil
}

// DefaultDataDir returns the default isekai state directory.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".isekai"), nil
}

func (c Config) MissionRetention() time.Duration {
	return time.Duration(c.MissionRetentionDays) * 24 * time.Hour
}

func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}
