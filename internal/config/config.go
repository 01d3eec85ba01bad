// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	API   API   `yaml:"api"`
	Vault Vault `yaml:"vault"`
	Cache Cache `yaml:"cache"`
	Watch Watch `yaml:"watch"`
}

// API configures the connection to the trading platform's REST API.
type API struct {
	BaseURL string        `yaml:"baseURL" default:"http://localhost:8000/api/v1"`
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

// VaultBackend selects where the session tokens are persisted.
type VaultBackend string

const (
	VaultBackendFile   VaultBackend = "file"
	VaultBackendValKey VaultBackend = "valkey"
)

// Vault configures the persistence of the two session tokens. Nothing else
// about the session is ever persisted.
type Vault struct {
	Backend VaultBackend `yaml:"backend" default:"file"`

	// File backend: path of the credentials file. Empty means
	// $HOME/.stockyodha/credentials.json.
	Path string `yaml:"path"`

	// ValKey backend.
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	Prefix   string              `yaml:"prefix" default:"stockyodha"`
	Profile  string              `yaml:"profile" default:"default"`
}

// Cache configures the in-process TTL cache for read-mostly market data.
type Cache struct {
	QuoteTTL        time.Duration `yaml:"quoteTTL" default:"15s"`
	TrendsTTL       time.Duration `yaml:"trendsTTL" default:"60s"`
	NewsTTL         time.Duration `yaml:"newsTTL" default:"120s"`
	CleanupInterval time.Duration `yaml:"cleanupInterval" default:"5m"`
}

// Watch configures the long-running quote watcher service.
type Watch struct {
	Interval time.Duration `yaml:"interval" default:"30s"`
	Limit    int           `yaml:"limit" default:"50"`
}
