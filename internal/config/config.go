package config

import (
	"errors"
	"fmt"
	"os"
)

type Config struct {
	ServiceName    string
	LogLevel       string
	HTTPListenAddr string
	MetricsAddr    string

	// CostExplorerRegion is the signing region for Cost Explorer calls.
	// The service is only served out of us-east-1.
	CostExplorerRegion string

	// Endpoint overrides, e.g. for LocalStack. Empty means the SDK default.
	CostExplorerEndpoint string
	CloudWatchEndpoint   string
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:          getEnv("SERVICE_NAME", "ri-utilization"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		HTTPListenAddr:       getEnv("HTTP_LISTEN_ADDR", ":8090"),
		MetricsAddr:          getEnv("METRICS_ADDR", ""),
		CostExplorerRegion:   getEnv("COST_EXPLORER_REGION", "us-east-1"),
		CostExplorerEndpoint: getEnv("COST_EXPLORER_ENDPOINT", ""),
		CloudWatchEndpoint:   getEnv("CLOUDWATCH_ENDPOINT", ""),
	}

	return cfg, nil
}

// Validate checks that the variables required by the given binary role are
// set. Roles are "lambda", "server" and "cli".
func (c *Config) Validate(role string) error {
	var errs []error
	require := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	require("COST_EXPLORER_REGION", c.CostExplorerRegion)

	switch role {
	case "server":
		require("HTTP_LISTEN_ADDR", c.HTTPListenAddr)
		if c.MetricsAddr != "" && c.MetricsAddr == c.HTTPListenAddr {
			errs = append(errs, fmt.Errorf("METRICS_ADDR must differ from HTTP_LISTEN_ADDR"))
		}
	case "lambda", "cli":
	default:
		errs = append(errs, fmt.Errorf("unknown role %q", role))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
