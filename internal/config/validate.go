package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	validFormats := []string{"table"}
	if cfg.Catalog.Format != "" && !slices.Contains(validFormats, cfg.Catalog.Format) {
		issues = append(issues, ValidationIssue{
			Path:    "catalog.format",
			Message: fmt.Sprintf("must be one of %v, got %q", validFormats, cfg.Catalog.Format),
		})
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"auto", "lan", "loopback", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}

	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when server.bind is custom",
		})
	}

	validAuthModes := []string{"token", "password", "none"}
	if cfg.Server.Auth.Mode != "" && !slices.Contains(validAuthModes, cfg.Server.Auth.Mode) {
		issues = append(issues, ValidationIssue{
			Path:    "server.auth.mode",
			Message: fmt.Sprintf("must be one of %v, got %q", validAuthModes, cfg.Server.Auth.Mode),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	return issues
}
