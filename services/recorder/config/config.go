package config

import (
	"fmt"
	"os"

	"github.com/iulianpascalau/site-monitoring/commonGo"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultListenAddress = ":8080"
	defaultTTLDays       = 90
)

// Config maps to the config.toml file for the recorder service
type Config struct {
	ListenAddress string `toml:"ListenAddress"`
	DatabasePath  string `toml:"DatabasePath"`
	TTLDays       int    `toml:"TTLDays"`
}

// LoadConfig parses a TOML file into the Config struct, fills the defaults and
// applies the recognized environment overrides
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if len(cfg.ListenAddress) == 0 {
		cfg.ListenAddress = defaultListenAddress
	}
	if cfg.TTLDays <= 0 {
		cfg.TTLDays = defaultTTLDays
	}
}

func (cfg *Config) applyEnvOverrides() {
	// TABLE_NAME is the durable store identifier, here the SQLite database path
	cfg.DatabasePath = commonGo.EnvString("TABLE_NAME", cfg.DatabasePath)
	cfg.TTLDays = commonGo.EnvInt("TTL_DAYS", cfg.TTLDays)
}
