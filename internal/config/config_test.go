package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG", "SERVER_ADDRESS", "DATABASE_DSN", "SESSION_DIR", "ADMIN_TOKEN", "LOG_LEVEL", "TLS_CERT_FILE", "TLS_KEY_FILE"} {
		t.Setenv(k, "")
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	clearEnv(t)

	opts, err := ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", opts.Port)
	assert.Equal(t, "", opts.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, opts.SessionTTL)
	assert.Equal(t, "pageguard_session", opts.CookieName)
	assert.Equal(t, "info", opts.LogLevel)
	assert.False(t, opts.CookieSecure)
}

func TestParseArgs_Flags(t *testing.T) {
	clearEnv(t)

	opts, err := ParseArgs([]string{
		"-a", ":9090",
		"-d", "postgres://x",
		"-s", "/var/lib/pageguard",
		"-ttl", "30m",
		"-t", "tok",
		"-secure",
		"-tls-cert", "certs/server.crt",
		"-tls-key", "certs/server.key",
		"-c", "",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", opts.Port)
	assert.Equal(t, "postgres://x", opts.DatabaseDSN)
	assert.Equal(t, "/var/lib/pageguard", opts.SessionDir)
	assert.Equal(t, 30*time.Minute, opts.SessionTTL)
	assert.Equal(t, "tok", opts.AdminToken)
	assert.True(t, opts.CookieSecure)
	assert.Equal(t, "certs/server.crt", opts.TLSCert)
	assert.Equal(t, "certs/server.key", opts.TLSKey)
}

func TestParseArgs_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"port":":7000","database_dsn":"from-file","admin_token":"file-token","cookie_name":"pg","session_ttl":"90m"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	t.Setenv("CONFIG", path)
	t.Setenv("ADMIN_TOKEN", "env-token")

	opts, err := ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, ":7000", opts.Port)
	assert.Equal(t, "from-file", opts.DatabaseDSN)
	assert.Equal(t, "pg", opts.CookieName)
	assert.Equal(t, 90*time.Minute, opts.SessionTTL)
	assert.Equal(t, "env-token", opts.AdminToken)
}

func TestParseArgs_Errors(t *testing.T) {
	clearEnv(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))
	badTTL := filepath.Join(t.TempDir(), "ttl.json")
	require.NoError(t, os.WriteFile(badTTL, []byte(`{"session_ttl":"soon"}`), 0600))
	numericTTL := filepath.Join(t.TempDir(), "ttl-num.json")
	require.NoError(t, os.WriteFile(numericTTL, []byte(`{"session_ttl":3600}`), 0600))

	cases := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"bad config file", []string{"-c", bad}},
		{"unparsable session ttl", []string{"-c", badTTL}},
		{"numeric session ttl", []string{"-c", numericTTL}},
		{"zero ttl", []string{"-c", "", "-ttl", "0s"}},
		{"tls cert without key", []string{"-c", "", "-tls-cert", "server.crt"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArgs(tc.args)
			assert.Error(t, err)
		})
	}
}
