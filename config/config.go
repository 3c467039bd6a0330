// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/pdaledger/consts"
	"github.com/ava-labs/pdaledger/pebble"
	"github.com/ava-labs/pdaledger/server"
	"github.com/ava-labs/pdaledger/trace"
	"github.com/ava-labs/pdaledger/utils"
)

const (
	MemoryBackend = "memory"
	PebbleBackend = "pebble"
	RedisBackend  = "redis"
)

type Config struct {
	// ProgramID namespaces every derived address. Empty uses [DefaultProgramID].
	ProgramID string `json:"programId" yaml:"programId"`

	Log    LogConfig    `json:"log" yaml:"log"`
	Server ServerConfig `json:"server" yaml:"server"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Trace  trace.Config `json:"trace" yaml:"trace"`
}

type LogConfig struct {
	Level        string `json:"level" yaml:"level"`
	DisplayLevel string `json:"displayLevel" yaml:"displayLevel"`
	Format       string `json:"format" yaml:"format"`
	Directory    string `json:"directory" yaml:"directory"`
	MaxSize      int    `json:"maxSize" yaml:"maxSize"` // megabytes
	MaxFiles     int    `json:"maxFiles" yaml:"maxFiles"`
	MaxAge       int    `json:"maxAge" yaml:"maxAge"` // days
	Compress     bool   `json:"compress" yaml:"compress"`
}

type ServerConfig struct {
	ListenAddress     string   `json:"listenAddress" yaml:"listenAddress"`
	AllowedOrigins    []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts      []string `json:"allowedHosts" yaml:"allowedHosts"`
	ReadTimeout       Duration `json:"readTimeout" yaml:"readTimeout"`
	ReadHeaderTimeout Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       Duration `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout   Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

type StoreConfig struct {
	// One of [MemoryBackend], [PebbleBackend] or [RedisBackend].
	Backend  string        `json:"backend" yaml:"backend"`
	DataDir  string        `json:"dataDir" yaml:"dataDir"`
	Pebble   pebble.Config `json:"pebble" yaml:"pebble"`
	RedisURL string        `json:"redisURL" yaml:"redisURL"`
}

// DefaultProgramID is used when no program id is configured.
var DefaultProgramID = utils.ToID([]byte(consts.Name))

func newDefault() *Config {
	return &Config{
		Log: LogConfig{
			Level:        "info",
			DisplayLevel: "info",
			Format:       "auto",
			Directory:    "logs",
			MaxSize:      8,
			MaxFiles:     7,
			MaxAge:       0,
		},
		Server: ServerConfig{
			ListenAddress:     "127.0.0.1:9650",
			AllowedOrigins:    []string{"*"},
			AllowedHosts:      []string{"localhost"},
			ReadTimeout:       Duration(30 * time.Second),
			ReadHeaderTimeout: Duration(30 * time.Second),
			WriteTimeout:      Duration(30 * time.Second),
			IdleTimeout:       Duration(120 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
		},
		Store: StoreConfig{
			Backend: MemoryBackend,
			DataDir: "data",
			Pebble:  pebble.NewDefaultConfig(),
		},
		Trace: trace.Config{
			AppName: consts.Name,
			Agent:   "ledgerd",
		},
	}
}

// New parses a JSON config over the defaults. Empty input yields the
// defaults.
func New(b []byte) (*Config, error) {
	c := newDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, c.Verify()
}

// NewYAML is [New] for YAML input.
func NewYAML(b []byte) (*Config, error) {
	c := newDefault()
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, c.Verify()
}

// Load reads [path], choosing the decoder from its extension. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	if len(path) == 0 {
		return New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAML(b)
	default:
		return New(b)
	}
}

func (c *Config) Verify() error {
	if _, err := c.GetProgramID(); err != nil {
		return err
	}
	if _, err := logging.ToLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ToLevel(c.Log.DisplayLevel); err != nil {
		return fmt.Errorf("%w: display level: %w", ErrInvalidConfig, err)
	}
	switch c.Store.Backend {
	case MemoryBackend, PebbleBackend:
	case RedisBackend:
		if len(c.Store.RedisURL) == 0 {
			return fmt.Errorf("%w: redis backend requires redisURL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	return nil
}

func (c *Config) GetProgramID() (ids.ID, error) {
	if len(c.ProgramID) == 0 {
		return DefaultProgramID, nil
	}
	id, err := ids.FromString(c.ProgramID)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: program id: %w", ErrInvalidConfig, err)
	}
	return id, nil
}

// GetLogConfig converts the log section into the avalanchego logging config
// consumed by the log factory.
func (c *Config) GetLogConfig() (logging.Config, error) {
	level, err := logging.ToLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, err
	}
	displayLevel, err := logging.ToLevel(c.Log.DisplayLevel)
	if err != nil {
		return logging.Config{}, err
	}
	format, err := logging.ToFormat(c.Log.Format, os.Stdout.Fd())
	if err != nil {
		return logging.Config{}, err
	}
	cfg := logging.Config{
		LogLevel:     level,
		DisplayLevel: displayLevel,
		LogFormat:    format,
	}
	cfg.Directory = c.Log.Directory
	cfg.MaxSize = c.Log.MaxSize
	cfg.MaxFiles = c.Log.MaxFiles
	cfg.MaxAge = c.Log.MaxAge
	cfg.Compress = c.Log.Compress
	return cfg, nil
}

func (c *Config) GetHTTPConfig() server.HTTPConfig {
	return server.HTTPConfig{
		ReadTimeout:       c.Server.ReadTimeout.Duration(),
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout.Duration(),
		WriteTimeout:      c.Server.WriteTimeout.Duration(),
		IdleTimeout:       c.Server.IdleTimeout.Duration(),
	}
}
