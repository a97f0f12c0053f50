package config

import "time"

// Config holds runtime settings for the task tracker CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - StateDBPath: path of the local sqlite file holding session state.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StateDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:4000"
	c.RequestTimeout = 10 * time.Second
	c.StateDBPath = "tasktracker.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
