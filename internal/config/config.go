// Package config loads tododoc settings from a TOML file and environment
// variables. Environment values override the file; the file overrides the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/tododoc/internal/action"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

// DefaultsConfig overrides the titles and values given to new nodes.
type DefaultsConfig struct {
	CategoryTitle string `toml:"category_title"`
	CategoryColor string `toml:"category_color"`
	SectionTitle  string `toml:"section_title"`
	ItemTitle     string `toml:"item_title"`
	ItemPriority  string `toml:"item_priority"`
	SubtaskTitle  string `toml:"subtask_title"`
	NoteContent   string `toml:"note_content"`
}

// Config holds all runtime settings.
type Config struct {
	Storage          string         `toml:"storage"`
	DBPath           string         `toml:"db_path"`
	MongoURI         string         `toml:"mongo_uri"`
	MongoDatabase    string         `toml:"mongo_database"`
	MongoTimeoutMs   int            `toml:"mongo_timeout_ms"`
	Document         string         `toml:"document"`
	CompletionPolicy string         `toml:"completion_policy"`
	LogLevel         string         `toml:"log_level"`
	Defaults         DefaultsConfig `toml:"defaults"`
}

// DefaultConfig returns the built-in settings. Data lives under
// ~/.tododoc unless home is empty.
func DefaultConfig(home string) Config {
	return Config{
		Storage:          StorageSQLite,
		DBPath:           filepath.Join(home, ".tododoc", "tododoc.db"),
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "tododoc",
		MongoTimeoutMs:   5000,
		Document:         "default",
		CompletionPolicy: string(action.PolicyIndependent),
		LogLevel:         "warn",
	}
}

// Path returns the config file location: TODODOC_CONFIG, or
// ~/.tododoc/config.toml.
func Path(home string) string {
	if v := os.Getenv("TODODOC_CONFIG"); v != "" {
		return expandPath(v, home)
	}
	return filepath.Join(home, ".tododoc", "config.toml")
}

// Load builds the effective configuration. A missing file at path is not an
// error; a malformed one is.
func Load(path, home string) (Config, error) {
	cfg := DefaultConfig(home)

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.DBPath = expandPath(cfg.DBPath, home)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TODODOC_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("TODODOC_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TODODOC_MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("TODODOC_MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("TODODOC_MONGO_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MongoTimeoutMs = n
		}
	}
	if v := os.Getenv("TODODOC_DOC"); v != "" {
		cfg.Document = v
	}
	if v := os.Getenv("TODODOC_POLICY"); v != "" {
		cfg.CompletionPolicy = v
	}
	if v := os.Getenv("TODODOC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate rejects settings no component can act on.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for sqlite storage")
		}
	case StorageMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("mongo_uri and mongo_database are required for mongo storage")
		}
	default:
		return fmt.Errorf("invalid storage %q (expected sqlite|mongo)", c.Storage)
	}
	if _, ok := action.ParsePolicy(c.CompletionPolicy); !ok {
		return fmt.Errorf("invalid completion_policy %q (expected independent|rollup)", c.CompletionPolicy)
	}
	if c.Defaults.ItemPriority != "" {
		if _, err := domain.ParsePriority(c.Defaults.ItemPriority); err != nil {
			return fmt.Errorf("defaults.item_priority: %w", err)
		}
	}
	return nil
}

// Policy returns the parsed completion policy.
func (c Config) Policy() action.Policy {
	p, _ := action.ParsePolicy(c.CompletionPolicy)
	return p
}

// EditorDefaults converts the [defaults] table for the editor.
func (c Config) EditorDefaults() editor.Defaults {
	d := c.Defaults
	return editor.Defaults{
		CategoryTitle: d.CategoryTitle,
		CategoryColor: d.CategoryColor,
		SectionTitle:  d.SectionTitle,
		ItemTitle:     d.ItemTitle,
		ItemPriority:  domain.Priority(d.ItemPriority),
		SubtaskTitle:  d.SubtaskTitle,
		NoteContent:   d.NoteContent,
	}
}

// MongoTimeout is the connect and ping deadline for the mongo backend.
func (c Config) MongoTimeout() time.Duration {
	return time.Duration(c.MongoTimeoutMs) * time.Millisecond
}

func expandPath(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return os.ExpandEnv(p)
}
