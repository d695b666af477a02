// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Transport selects the MCP transport: "stdio" or "http".
	Transport string `koanf:"transport"`

	// MCPAddr configures the MCP streamable-HTTP listen address. Used only
	// when Transport is "http".
	MCPAddr string `koanf:"mcp_addr"`

	// MetricsAddr configures the operational HTTP listen address serving
	// /healthz and /stats. Empty disables the operational server.
	MetricsAddr string `koanf:"metrics_addr"`

	// CSVPath points at the rankings CSV file to load.
	CSVPath string `koanf:"csv_path"`

	// TopUniversitiesCap caps top_n for the top-universities listing.
	TopUniversitiesCap int `koanf:"top_universities_cap"`

	// MaxTopN caps top_n for the aggregate operations.
	MaxTopN int `koanf:"max_top_n"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Transport:          "stdio",
		MCPAddr:            ":9000",
		MetricsAddr:        ":9080",
		CSVPath:            "rankings.csv",
		TopUniversitiesCap: 100,
		MaxTopN:            500,
	}
}
