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

	assert.Equal(t, ":4000", c.EndpointAddr)
	assert.Equal(t, 7*24*time.Hour, c.TokenValidityDuration)
	assert.NotEmpty(t, c.DatabaseDSN)
	assert.NotEmpty(t, c.SecretKey)
	assert.NotEmpty(t, c.S3Bucket)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":9999", "-s", "flag-secret", "-t", "24"}

	c := LoadConfig()

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
}

func TestLoadConfig_IgnoresUnknownFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-zz", "whatever", "-a", ":5001"}

	c := LoadConfig()

	assert.Equal(t, ":5001", c.EndpointAddr)
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	f, err := os.CreateTemp(t.TempDir(), "conf-*.json")
	require.NoError(t, err)

	_, err = f.WriteString(`{
		"endpoint_addr": ":8088",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "json-secret",
		"token_validity_duration": "48h",
		"s3_bucket": "pics"
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	os.Args = []string{"server", "-c", f.Name()}

	c := LoadConfig()

	assert.Equal(t, ":8088", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h:5432/db", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 48*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "pics", c.S3Bucket)
}
