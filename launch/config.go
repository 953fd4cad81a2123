// File: launch/config.go
// Package launch holds the immutable launch-time configuration and the
// threading policy derived from it.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package launch

import (
	"crypto/tls"
	"net"
	"net/url"
	"strconv"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/execution"
)

// Config is the frozen launch configuration. It is built once by a Builder,
// consumed read-only for the server's lifetime and discarded at shutdown.
// Every accessor is pure, so a single Config may be shared across all
// goroutines without synchronization.
type Config struct {
	baseDir          string
	handlerFactory   api.HandlerFactory
	port             int
	address          string
	hasAddress       bool
	reloadable       bool
	workerThreads    int
	allocator        api.Allocator
	publicAddress    *url.URL
	indexFiles       []string
	tlsConfig        *tls.Config
	other            map[string]string
	maxContentLength int
}

var _ api.Config = (*Config)(nil)

// BaseDir returns the application base directory.
func (c *Config) BaseDir() string { return c.baseDir }

// HandlerFactory returns the root handler factory.
func (c *Config) HandlerFactory() api.HandlerFactory { return c.handlerFactory }

// Port returns the listen port.
func (c *Config) Port() int { return c.port }

// Address returns the bind address; ok is false when all interfaces
// should be bound.
func (c *Config) Address() (string, bool) { return c.address, c.hasAddress }

// Reloadable reports development mode.
func (c *Config) Reloadable() bool { return c.reloadable }

// WorkerThreads returns the dedicated pool size; <= 0 means inline dispatch.
func (c *Config) WorkerThreads() int { return c.workerThreads }

// Allocator returns the buffer allocation policy.
func (c *Config) Allocator() api.Allocator { return c.allocator }

// PublicAddress returns the public URI used for redirects, or nil.
func (c *Config) PublicAddress() *url.URL { return c.publicAddress }

// IndexFiles returns a copy of the configured index file names.
func (c *Config) IndexFiles() []string {
	out := make([]string, len(c.indexFiles))
	copy(out, c.indexFiles)
	return out
}

// TLS returns the TLS material; ok is false for plaintext servers.
func (c *Config) TLS() (*tls.Config, bool) { return c.tlsConfig, c.tlsConfig != nil }

// Other returns the extension property for key, or def when absent.
func (c *Config) Other(key, def string) string {
	if v, ok := c.other[key]; ok {
		return v
	}
	return def
}

// MaxContentLength returns the maximum aggregated request content length.
func (c *Config) MaxContentLength() int { return c.maxContentLength }

// ExecutionProvider returns a handle resolving the calling goroutine's
// active execution. The handle is process-scoped: providers obtained from
// different Config instances (or directly from the execution package) are
// functionally identical.
func (c *Config) ExecutionProvider() execution.Provider {
	return execution.NewProvider()
}

// ListenAddr renders the host:port pair for net.Listen.
func (c *Config) ListenAddr() string {
	host := ""
	if c.hasAddress {
		host = c.address
	}
	return net.JoinHostPort(host, strconv.Itoa(c.port))
}
