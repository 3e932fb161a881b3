// Package config handles configuration for the CLI client,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the Gatekeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP endpoint.
//   - DatabaseDSN: path of the local sqlite file holding the session.
type Config struct {
	ServerURL   string
	DatabaseDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabaseDSN = "session.db"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
