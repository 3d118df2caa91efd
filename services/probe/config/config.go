package config

import (
	"fmt"
	"os"

	"github.com/iulianpascalau/site-monitoring/commonGo"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultNamespace              = "WebsiteMonitoring"
	defaultSiteName               = "default"
	defaultProbeIntervalInSeconds = 300
	defaultProbeTimeoutInSeconds  = 30
	defaultEmitTimeoutInSeconds   = 10
)

// Config maps to the config.toml file for the probe service
type Config struct {
	SiteName               string `toml:"SiteName"`
	TargetURL              string `toml:"TargetURL"`
	Namespace              string `toml:"Namespace"`
	HealthJSONPath         string `toml:"HealthJSONPath"`
	ProbeIntervalInSeconds uint32 `toml:"ProbeIntervalInSeconds"`
	ProbeTimeoutInSeconds  uint32 `toml:"ProbeTimeoutInSeconds"`
	MetricsEndpoint        string `toml:"MetricsEndpoint"`
	EmitTimeoutInSeconds   uint32 `toml:"EmitTimeoutInSeconds"`
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
	if len(cfg.Namespace) == 0 {
		cfg.Namespace = defaultNamespace
	}
	if len(cfg.SiteName) == 0 {
		cfg.SiteName = defaultSiteName
	}
	if cfg.ProbeIntervalInSeconds == 0 {
		cfg.ProbeIntervalInSeconds = defaultProbeIntervalInSeconds
	}
	if cfg.ProbeTimeoutInSeconds == 0 {
		cfg.ProbeTimeoutInSeconds = defaultProbeTimeoutInSeconds
	}
	if cfg.EmitTimeoutInSeconds == 0 {
		cfg.EmitTimeoutInSeconds = defaultEmitTimeoutInSeconds
	}
}

func (cfg *Config) applyEnvOverrides() {
	cfg.TargetURL = commonGo.EnvString("TARGET_URL", cfg.TargetURL)
	cfg.Namespace = commonGo.EnvString("NAMESPACE", cfg.Namespace)
	cfg.SiteName = commonGo.EnvString("SITE_NAME", cfg.SiteName)
}
