// File: launch/config_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package launch_test

import (
	"crypto/tls"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/launch"
)

func TestBuilderDefaults(t *testing.T) {
	cfg, err := launch.NewBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.Port())
	assert.Equal(t, 65536, cfg.MaxContentLength())
	assert.False(t, cfg.Reloadable())
	assert.Equal(t, 0, cfg.WorkerThreads())
	assert.Empty(t, cfg.IndexFiles())
	assert.NotNil(t, cfg.Allocator())

	_, ok := cfg.Address()
	assert.False(t, ok, "default config binds all interfaces")
	_, ok = cfg.TLS()
	assert.False(t, ok, "default config is plaintext")
}

func TestOtherProperties(t *testing.T) {
	cfg, err := launch.NewBuilder().Other("k", "v").Build()
	require.NoError(t, err)

	assert.Equal(t, "v", cfg.Other("k", "fallback"))
	assert.Equal(t, "fallback", cfg.Other("missing-key", "fallback"))
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*launch.Config, error)
		field string
	}{
		{
			name:  "negative max content length",
			build: func() (*launch.Config, error) { return launch.NewBuilder().MaxContentLength(-1).Build() },
			field: "maxContentLength",
		},
		{
			name:  "port too large",
			build: func() (*launch.Config, error) { return launch.NewBuilder().Port(70000).Build() },
			field: "port",
		},
		{
			name:  "negative port",
			build: func() (*launch.Config, error) { return launch.NewBuilder().Port(-1).Build() },
			field: "port",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var cfgErr *launch.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNegativeWorkerThreadsIsValid(t *testing.T) {
	cfg, err := launch.NewBuilder().WorkerThreads(-4).Build()
	require.NoError(t, err)
	assert.Equal(t, -4, cfg.WorkerThreads())
	assert.Equal(t, launch.Inline, launch.Decide(cfg.WorkerThreads()).Mode)
}

func TestConfigImmutability(t *testing.T) {
	b := launch.NewBuilder().IndexFiles("index.html", "index.txt").Other("a", "1")
	cfg, err := b.Build()
	require.NoError(t, err)

	// Mutating the builder after Build must not leak into the frozen value.
	b.Other("a", "2").IndexFiles("changed")
	assert.Equal(t, "1", cfg.Other("a", ""))
	assert.Equal(t, []string{"index.html", "index.txt"}, cfg.IndexFiles())

	// Mutating the accessor's return value must not affect later reads.
	files := cfg.IndexFiles()
	files[0] = "mutated"
	assert.Equal(t, "index.html", cfg.IndexFiles()[0])
}

func TestTLSAndAddress(t *testing.T) {
	src := &tls.Config{ServerName: "example.com"}
	pub, _ := url.Parse("https://example.com:8443")

	cfg, err := launch.NewBuilder().
		Address("127.0.0.1").
		TLS(src).
		PublicAddress(pub).
		Build()
	require.NoError(t, err)

	addr, ok := cfg.Address()
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", addr)
	assert.Equal(t, "127.0.0.1:5050", cfg.ListenAddr())
	assert.Equal(t, pub, cfg.PublicAddress())

	got, ok := cfg.TLS()
	require.True(t, ok)
	assert.Equal(t, "example.com", got.ServerName)

	// The config holds a clone: mutating the source afterwards is inert.
	src.ServerName = "mutated"
	got, _ = cfg.TLS()
	assert.Equal(t, "example.com", got.ServerName)
}

func TestProvidersDecoupledFromConfig(t *testing.T) {
	cfg1, err := launch.NewBuilder().Build()
	require.NoError(t, err)
	cfg2, err := launch.NewBuilder().Port(6060).Build()
	require.NoError(t, err)

	// Providers from distinct configurations are interchangeable: they
	// resolve against the same process-level binding state.
	assert.Equal(t, cfg1.ExecutionProvider(), cfg2.ExecutionProvider())
}

func TestDefaultConstantsExported(t *testing.T) {
	assert.Equal(t, 5050, api.DefaultPort)
	assert.Equal(t, 65536, api.DefaultMaxContentLength)
}
