package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"BLOCKSTAGE_TICK_MS", "BLOCKSTAGE_PROJECT_DIR", "BLOCKSTAGE_PROJECT",
	"BLOCKSTAGE_AUDIO_ENABLED", "BLOCKSTAGE_MASTER_VOLUME", "BLOCKSTAGE_SAMPLE_RATE",
	"BLOCKSTAGE_MQTT_ENABLED", "BLOCKSTAGE_MQTT_URL", "BLOCKSTAGE_MQTT_PREFIX",
	"BLOCKSTAGE_PG_ENABLED",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockstage.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadDefaults verifies loading with no file and no env vars
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickInterval != 33*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.TickInterval)
	}
	if !cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.5 || cfg.Audio.SampleRate != 48000 {
		t.Errorf("Audio = %+v", cfg.Audio)
	}
	if cfg.MQTT.Enabled || cfg.Postgres.Enabled {
		t.Error("Network features must default off")
	}
	if cfg.ProjectDir != "projects" || cfg.Project != "untitled" {
		t.Errorf("Project settings = %q %q", cfg.ProjectDir, cfg.Project)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
version: 1
tick_interval: 50ms
project: demo
audio:
  enabled: false
  master_volume: 0.8
mqtt:
  enabled: true
  broker_url: tcp://broker:1883
  prefix: room1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickInterval != 50*time.Millisecond || cfg.Project != "demo" {
		t.Errorf("Top level = %v %q", cfg.TickInterval, cfg.Project)
	}
	if cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.8 || cfg.Audio.SampleRate != 48000 {
		t.Errorf("Audio = %+v, want file values over defaults", cfg.Audio)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.BrokerURL != "tcp://broker:1883" || cfg.MQTT.Prefix != "room1" || cfg.MQTT.ClientID != "blockstage" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "version: 1\nproject: demo\n")
	t.Setenv("BLOCKSTAGE_PROJECT", "other")
	t.Setenv("BLOCKSTAGE_TICK_MS", "20")
	t.Setenv("BLOCKSTAGE_MASTER_VOLUME", "150")
	t.Setenv("BLOCKSTAGE_AUDIO_ENABLED", "false")
	t.Setenv("BLOCKSTAGE_MQTT_ENABLED", "1")
	t.Setenv("BLOCKSTAGE_PG_ENABLED", "true")
	t.Setenv("BLOCKSTAGE_SAMPLE_RATE", "nope")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project != "other" || cfg.TickInterval != 20*time.Millisecond {
		t.Errorf("Env override = %q %v", cfg.Project, cfg.TickInterval)
	}
	if cfg.Audio.MasterVolume != 1 || cfg.Audio.Enabled {
		t.Errorf("Audio = %+v, want clamped volume and disabled", cfg.Audio)
	}
	if !cfg.MQTT.Enabled || !cfg.Postgres.Enabled {
		t.Error("Boolean env overrides")
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Error("Invalid sample rate must be ignored")
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Missing file must fail")
	}
	if _, err := Load(writeFile(t, "version: 2\n")); err == nil {
		t.Error("Unknown version must fail")
	}
	if _, err := Load(writeFile(t, "version: [\n")); err == nil {
		t.Error("Malformed YAML must fail")
	}
}
