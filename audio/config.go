package audio

import "github.com/lixenwraith/blockstage/constants"

// Config holds audio settings
type Config struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0-1.0
	SampleRate   int     `yaml:"sample_rate"`
}

// DefaultConfig returns the default audio configuration
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   constants.AudioSampleRate,
	}
}

// Normalize clamps values into their valid ranges
func (c *Config) Normalize() {
	c.MasterVolume = min(max(c.MasterVolume, 0), 1)
	if c.SampleRate <= 0 {
		c.SampleRate = constants.AudioSampleRate
	}
}
