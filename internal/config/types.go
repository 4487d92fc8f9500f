package config

// Config is the root configuration for agentdex.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// CatalogConfig selects the catalog source table.
type CatalogConfig struct {
	Path   string `yaml:"path,omitempty"`   // catalog table file; empty uses the embedded dataset
	Format string `yaml:"format,omitempty"` // "table" — pipe-delimited table is the only supported format
}

// ServerConfig controls the catalog query server.
type ServerConfig struct {
	Port           int        `yaml:"port,omitempty"`
	Bind           string     `yaml:"bind,omitempty"` // "loopback" | "lan" | "auto" | "custom"
	CustomBindHost string     `yaml:"customBindHost,omitempty"`
	Auth           ServerAuth `yaml:"auth,omitempty"`
	AllowedOrigins []string   `yaml:"allowedOrigins,omitempty"`
}

// ServerAuth configures query server authentication for WebSocket clients.
type ServerAuth struct {
	Mode     string `yaml:"mode,omitempty"` // "token" | "password" | "none"
	Token    string `yaml:"token,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}
