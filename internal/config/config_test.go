package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const validYAML = `
port: "9090"
log:
  level: DEBUG
db:
  driver: sqlite
  path: /tmp/todo.db
session:
  secret: "0123456789abcdef0123"
  store: Gorm
  max_age: 600
auth:
  hasher: bcrypt
  token_secret: "tok-secret"
  token_ttl: 30m
`

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ModeStore, cfg.Mode)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/todo.db", cfg.DB.Path)
	assert.Equal(t, SessionStoreGorm, cfg.Session.Store)
	assert.Equal(t, "todo_session", cfg.Session.Name)
	assert.Equal(t, 600, cfg.Session.MaxAge)
	assert.Equal(t, "bcrypt", cfg.Auth.Hasher)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TODO_PORT", "7070")
	t.Setenv("TODO_DB_PATH", "/var/lib/todo.db")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/var/lib/todo.db", cfg.DB.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_MemoryModeNeedsNoSecrets(t *testing.T) {
	cfg, err := Load(writeConfig(t, "mode: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, ModeMemory, cfg.Mode)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "bad mode", yaml: "mode: cluster\n", wantErr: "invalid mode"},
		{name: "short secret", yaml: "session:\n  secret: short\nauth:\n  token_secret: x\n", wantErr: "session.secret"},
		{name: "missing token secret", yaml: "session:\n  secret: 0123456789abcdef\n", wantErr: "auth.token_secret"},
		{
			name:    "postgres without dsn",
			yaml:    "db:\n  driver: postgres\nsession:\n  secret: 0123456789abcdef\nauth:\n  token_secret: x\n",
			wantErr: "db.dsn",
		},
		{
			name:    "unknown driver",
			yaml:    "db:\n  driver: mysql\nsession:\n  secret: 0123456789abcdef\nauth:\n  token_secret: x\n",
			wantErr: "unsupported db.driver",
		},
		{
			name:    "unknown session store",
			yaml:    "session:\n  store: redis\n  secret: 0123456789abcdef\nauth:\n  token_secret: x\n",
			wantErr: "unsupported session.store",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
