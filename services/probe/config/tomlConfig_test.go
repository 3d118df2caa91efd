package config

import (
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	testString := `
SiteName = "example-com"
TargetURL = "https://example.com"
Namespace = "WebsiteMonitoring"
HealthJSONPath = "status"
ProbeIntervalInSeconds = 300
ProbeTimeoutInSeconds = 30
MetricsEndpoint = "https://metrics.internal/api/metrics"
EmitTimeoutInSeconds = 10
`

	expectedCfg := Config{
		SiteName:               "example-com",
		TargetURL:              "https://example.com",
		Namespace:              "WebsiteMonitoring",
		HealthJSONPath:         "status",
		ProbeIntervalInSeconds: 300,
		ProbeTimeoutInSeconds:  30,
		MetricsEndpoint:        "https://metrics.internal/api/metrics",
		EmitTimeoutInSeconds:   10,
	}

	cfg := Config{}

	err := toml.Unmarshal([]byte(testString), &cfg)
	assert.Nil(t, err)
	assert.Equal(t, expectedCfg, cfg)
}

func TestConfigDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("TARGET_URL", "https://override.example.com")
	t.Setenv("SITE_NAME", "override-site")

	cfg := Config{
		TargetURL: "https://original.example.com",
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	assert.Equal(t, "https://override.example.com", cfg.TargetURL)
	assert.Equal(t, "override-site", cfg.SiteName)
	assert.Equal(t, "WebsiteMonitoring", cfg.Namespace)
	assert.Equal(t, uint32(300), cfg.ProbeIntervalInSeconds)
	assert.Equal(t, uint32(30), cfg.ProbeTimeoutInSeconds)
	assert.Equal(t, uint32(10), cfg.EmitTimeoutInSeconds)
}
