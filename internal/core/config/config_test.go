package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, c.App.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, c.App.HTTP.CORSOrigins)
	assert.Equal(t, 10, c.Password.Cost)
	assert.Equal(t, 10, c.Pagination.DefaultPageSize)
	assert.Equal(t, 100, c.Pagination.MaxPageSize)
	assert.Equal(t, 100, c.Seed.Count)
	assert.Equal(t, "postgres", c.DB.Driver)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  http:
    port: 8080
    corsOrigins: ["https://a.example", "https://b.example"]
db:
  driver: mysql
  dsn: root:secret@tcp(localhost:3306)/users
pagination:
  maxPageSize: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("APP_DB_DRIVER", "memory")
	t.Setenv("APP_PASSWORD_COST", "12")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.App.HTTP.CORSOrigins)
	assert.Equal(t, "memory", c.DB.Driver)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/users", c.DB.DSN)
	assert.Equal(t, 12, c.Password.Cost)
	assert.Equal(t, 50, c.Pagination.MaxPageSize)
	assert.Equal(t, 10, c.Pagination.DefaultPageSize)
}

func TestLoad_EnvReachesKeysAbsentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  driver: mysql\n"), 0o600))
	t.Setenv("APP_DB_USERNAME", "svc")
	t.Setenv("APP_DB_PASSWORD", "s3cret")
	t.Setenv("APP_LOG_FILE_ENABLE", "true")
	t.Setenv("APP_LOG_FILE_COMPRESS", "true")
	t.Setenv("APP_APP_HTTP_BASEPATH", "/api")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "svc", c.DB.Username)
	assert.Equal(t, "s3cret", c.DB.Password)
	assert.True(t, c.Log.File.Enable)
	assert.True(t, c.Log.File.Compress)
	assert.Equal(t, "/api", c.App.HTTP.BasePath)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
