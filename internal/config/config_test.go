package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/tododoc/internal/action"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := Load(filepath.Join(home, "nope.toml"), home)
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, filepath.Join(home, ".tododoc", "tododoc.db"), cfg.DBPath)
	assert.Equal(t, "default", cfg.Document)
	assert.Equal(t, action.PolicyIndependent, cfg.Policy())
	assert.Equal(t, 5*time.Second, cfg.MongoTimeout())
}

func TestLoad_FileValues(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, `
storage = "sqlite"
db_path = "~/todo/data.db"
document = "work"
completion_policy = "rollup"

[defaults]
item_title = "New task"
item_priority = "high"
`)
	cfg, err := Load(path, home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "todo", "data.db"), cfg.DBPath)
	assert.Equal(t, "work", cfg.Document)
	assert.Equal(t, action.PolicyRollup, cfg.Policy())

	d := cfg.EditorDefaults()
	assert.Equal(t, "New task", d.ItemTitle)
	assert.Equal(t, domain.PriorityHigh, d.ItemPriority)
	assert.Equal(t, "", d.CategoryTitle)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `document = "work"`)
	t.Setenv("TODODOC_DOC", "home")
	t.Setenv("TODODOC_DB", ":memory:")
	t.Setenv("TODODOC_POLICY", "rollup")
	t.Setenv("TODODOC_MONGO_TIMEOUT_MS", "250")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "home", cfg.Document)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, action.PolicyRollup, cfg.Policy())
	assert.Equal(t, 250*time.Millisecond, cfg.MongoTimeout())
}

func TestLoad_InvalidTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("TODODOC_MONGO_TIMEOUT_MS", "soon")
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.MongoTimeoutMs)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `storage = `)
	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"storage":  `storage = "postgres"`,
		"policy":   `completion_policy = "auto"`,
		"priority": "[defaults]\nitem_priority = \"urgent\"",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestValidate_MongoNeedsURI(t *testing.T) {
	cfg := DefaultConfig("/home/x")
	cfg.Storage = StorageMongo
	cfg.MongoURI = ""
	assert.Error(t, cfg.Validate())
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("TODODOC_CONFIG", "~/alt.toml")
	assert.Equal(t, filepath.Join("/home/x", "alt.toml"), Path("/home/x"))
}

func TestPath_Default(t *testing.T) {
	t.Setenv("TODODOC_CONFIG", "")
	assert.Equal(t, filepath.Join("/home/x", ".tododoc", "config.toml"), Path("/home/x"))
}
