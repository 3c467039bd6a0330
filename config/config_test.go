// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pdaledger/pebble"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(MemoryBackend, c.Store.Backend)
	require.Equal(pebble.NewDefaultConfig(), c.Store.Pebble)
	require.False(c.Trace.Enabled)

	programID, err := c.GetProgramID()
	require.NoError(err)
	require.Equal(DefaultProgramID, programID)

	logCfg, err := c.GetLogConfig()
	require.NoError(err)
	require.Equal(logging.Info, logCfg.LogLevel)
	require.Equal(30*time.Second, c.GetHTTPConfig().ReadTimeout)
}

func TestNewJSON(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()

	c, err := New([]byte(`{
		"programId": "` + programID.String() + `",
		"log": {"level": "debug"},
		"server": {"listenAddress": "0.0.0.0:8080", "readTimeout": "5s"},
		"store": {"backend": "pebble", "dataDir": "/tmp/ledger", "pebble": {"sync": false}}
	}`))
	require.NoError(err)

	got, err := c.GetProgramID()
	require.NoError(err)
	require.Equal(programID, got)
	require.Equal("debug", c.Log.Level)
	require.Equal("info", c.Log.DisplayLevel)
	require.Equal("0.0.0.0:8080", c.Server.ListenAddress)
	require.Equal(Duration(5*time.Second), c.Server.ReadTimeout)
	require.Equal(Duration(30*time.Second), c.Server.WriteTimeout)
	require.Equal(PebbleBackend, c.Store.Backend)
	require.False(c.Store.Pebble.Sync)
	require.Equal(pebble.NewDefaultConfig().CacheSize, c.Store.Pebble.CacheSize)
}

func TestNewYAML(t *testing.T) {
	require := require.New(t)

	c, err := NewYAML([]byte(`
store:
  backend: redis
  redisURL: redis://localhost:6379/0
server:
  shutdownTimeout: 2s
  allowedHosts:
    - ledger.local
trace:
  enabled: true
  traceSampleRate: 0.5
`))
	require.NoError(err)
	require.Equal(RedisBackend, c.Store.Backend)
	require.Equal("redis://localhost:6379/0", c.Store.RedisURL)
	require.Equal(Duration(2*time.Second), c.Server.ShutdownTimeout)
	require.Equal([]string{"ledger.local"}, c.Server.AllowedHosts)
	require.True(c.Trace.Enabled)
	require.Equal(0.5, c.Trace.TraceSampleRate)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "ledgerd.yml")
	require.NoError(os.WriteFile(yamlPath, []byte("store:\n  backend: pebble\n"), 0o600))
	c, err := Load(yamlPath)
	require.NoError(err)
	require.Equal(PebbleBackend, c.Store.Backend)

	jsonPath := filepath.Join(dir, "ledgerd.json")
	require.NoError(os.WriteFile(jsonPath, []byte(`{"store": {"backend": "memory"}}`), 0o600))
	c, err = Load(jsonPath)
	require.NoError(err)
	require.Equal(MemoryBackend, c.Store.Backend)

	c, err = Load("")
	require.NoError(err)
	require.Equal(MemoryBackend, c.Store.Backend)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(err, os.ErrNotExist)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown backend", input: `{"store": {"backend": "etcd"}}`},
		{name: "redis without url", input: `{"store": {"backend": "redis"}}`},
		{name: "bad program id", input: `{"programId": "not-an-id"}`},
		{name: "bad log level", input: `{"log": {"level": "loud"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.input))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDurationText(t *testing.T) {
	require := require.New(t)

	var d Duration
	require.NoError(d.UnmarshalText([]byte("1m30s")))
	require.Equal(Duration(90*time.Second), d)
	b, err := d.MarshalText()
	require.NoError(err)
	require.Equal("1m30s", string(b))
	require.Error(d.UnmarshalText([]byte("soon")))
}
