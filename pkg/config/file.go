package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is looked up inside the data directory when
// TASKLIST_CONFIG is not set.
const DefaultConfigFile = "config.toml"

// fileConfig mirrors Config as it appears in a TOML file. Environment
// variables override every value read from the file.
type fileConfig struct {
	AppEnv   string `toml:"app_env"`
	TimeZone string `toml:"timezone"`

	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`

	Store struct {
		Backend     string `toml:"backend"`
		Slot        string `toml:"slot"`
		DataDir     string `toml:"data_dir"`
		FilePath    string `toml:"file_path"`
		SQLitePath  string `toml:"sqlite_path"`
		Table       string `toml:"table"`
		DatabaseURL string `toml:"database_url"`
		RedisURL    string `toml:"redis_url"`
	} `toml:"store"`

	WebDAV struct {
		URL      string `toml:"url"`
		Path     string `toml:"path"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		Token    string `toml:"token"`
	} `toml:"webdav"`

	Breaker struct {
		Enabled  *bool  `toml:"enabled"`
		Timeout  string `toml:"timeout"`
		Failures int    `toml:"failures"`
	} `toml:"breaker"`

	Reminders struct {
		Backend     string `toml:"backend"`
		RabbitMQURL string `toml:"rabbitmq_url"`
	} `toml:"reminders"`

	MCP struct {
		Addr      string `toml:"addr"`
		AuthToken string `toml:"auth_token"`
	} `toml:"mcp"`

	breakerTimeout time.Duration
}

// findConfigFile returns the file named by TASKLIST_CONFIG, or config.toml in
// the data directory when it exists. An empty path means no file.
func findConfigFile() (path string, explicit bool) {
	if path := os.Getenv("TASKLIST_CONFIG"); path != "" {
		return path, true
	}
	path = filepath.Join(getEnv("TASKLIST_DATA_DIR", defaultDataDir()), DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, false
}

// loadConfigFile decodes the TOML file at path. A missing file is an error
// only when it was named explicitly.
func loadConfigFile(path string, explicit bool) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}

	meta, err := toml.DecodeFile(path, fc)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}

	if fc.Breaker.Timeout != "" {
		d, err := time.ParseDuration(fc.Breaker.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config file %s: breaker.timeout: %w", path, err)
		}
		fc.breakerTimeout = d
	}
	return fc, nil
}

func or[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
