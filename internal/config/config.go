// Package config loads and validates agentdex configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Catalog: CatalogConfig{
			Format: "table",
		},
		Server: ServerConfig{
			Port: 18790,
			Bind: "loopback",
			Auth: ServerAuth{
				Mode: "token",
			},
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
