package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:4000", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "tasktracker.db", c.StateDBPath)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"client", "-a", "http://example.com:8080", "-r", "3", "-f", "state.db"}

	c := LoadConfig()

	assert.Equal(t, "http://example.com:8080", c.ServerBaseURL)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
	assert.Equal(t, "state.db", c.StateDBPath)
}

func TestLoadConfig_IgnoresUnknownFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"client", "-zz", "whatever", "-a", "http://h:1"}

	c := LoadConfig()

	assert.Equal(t, "http://h:1", c.ServerBaseURL)
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	f, err := os.CreateTemp(t.TempDir(), "conf-*.json")
	require.NoError(t, err)

	_, err = f.WriteString(`{
		"server_base_url": "http://api.internal:9000",
		"request_timeout": "5s",
		"state_db_path": "/tmp/tracker.db"
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	os.Args = []string{"client", "-c", f.Name()}

	c := LoadConfig()

	assert.Equal(t, "http://api.internal:9000", c.ServerBaseURL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "/tmp/tracker.db", c.StateDBPath)
}
