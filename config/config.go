// Package config loads the host settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/blockstage/audio"
	"github.com/lixenwraith/blockstage/bridge"
	"github.com/lixenwraith/blockstage/constants"
)

// Version is the only config document version accepted
const Version = 1

// Config is the full host configuration
type Config struct {
	Version      int           `yaml:"version"`
	TickInterval time.Duration `yaml:"tick_interval"`
	ProjectDir   string        `yaml:"project_dir"`
	Project      string        `yaml:"project"`

	Audio    audio.Config  `yaml:"audio"`
	MQTT     bridge.Config `yaml:"mqtt"`
	Postgres struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"postgres"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Version:      Version,
		TickInterval: constants.FrameUpdateInterval,
		ProjectDir:   "projects",
		Project:      "untitled",
		Audio:        audio.DefaultConfig(),
		MQTT:         bridge.DefaultConfig(),
	}
}

// Load reads path over the defaults and applies BLOCKSTAGE_* overrides. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.Version != Version {
			return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BLOCKSTAGE_TICK_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("BLOCKSTAGE_PROJECT_DIR"); v != "" {
		cfg.ProjectDir = v
	}
	if v := os.Getenv("BLOCKSTAGE_PROJECT"); v != "" {
		cfg.Project = v
	}

	if v := os.Getenv("BLOCKSTAGE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = b
		}
	}
	// Master volume is 0-100 in the environment, 0.0-1.0 in the struct
	if v := os.Getenv("BLOCKSTAGE_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Audio.MasterVolume = float64(n) / 100.0
		}
	}
	if v := os.Getenv("BLOCKSTAGE_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Audio.SampleRate = n
		}
	}

	if v := os.Getenv("BLOCKSTAGE_MQTT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MQTT.Enabled = b
		}
	}
	if v := os.Getenv("BLOCKSTAGE_MQTT_URL"); v != "" {
		cfg.MQTT.BrokerURL = v
	}
	if v := os.Getenv("BLOCKSTAGE_MQTT_PREFIX"); v != "" {
		cfg.MQTT.Prefix = v
	}

	if v := os.Getenv("BLOCKSTAGE_PG_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Postgres.Enabled = b
		}
	}
}

func (c *Config) normalize() {
	if c.TickInterval <= 0 {
		c.TickInterval = constants.FrameUpdateInterval
	}
	if c.ProjectDir == "" {
		c.ProjectDir = "projects"
	}
	if c.Project == "" {
		c.Project = "untitled"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "blockstage"
	}
	c.Audio.Normalize()
}
