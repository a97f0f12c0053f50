package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDBPath    string         `json:"state_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path is taken from the -c or -config flags; if neither is set, no JSON is
// loaded. If the file cannot be read or contains invalid JSON, the function
// panics.
func parseJson(cfg *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	cfg.ServerBaseURL = c.ServerBaseURL
	cfg.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	cfg.StateDBPath = c.StateDBPath
}
