// File: launch/builder.go
// Package launch
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Builder assembles a Config from defaults plus overrides and validates it
// exactly once, at Build. Accessors on the resulting Config never validate
// and never fail.

package launch

import (
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/pool"
)

// ConfigError reports invalid or contradictory launch settings. It is
// raised at construction time, never later.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("launch config: %s: %s", e.Field, e.Reason)
}

// Builder accumulates launch settings. The zero value is not usable; obtain
// one from NewBuilder, which seeds the documented defaults.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with defaults: port 5050, max content
// length 65536, no bind address (all interfaces), no TLS, no dedicated
// worker pool, empty index file list, pooled buffer allocation.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{
		port:             api.DefaultPort,
		maxContentLength: api.DefaultMaxContentLength,
		other:            map[string]string{},
	}}
}

// BaseDir sets the application base directory.
func (b *Builder) BaseDir(dir string) *Builder {
	b.cfg.baseDir = dir
	return b
}

// Handler sets the root handler factory.
func (b *Builder) Handler(f api.HandlerFactory) *Builder {
	b.cfg.handlerFactory = f
	return b
}

// Port sets the listen port.
func (b *Builder) Port(port int) *Builder {
	b.cfg.port = port
	return b
}

// Address sets the interface to bind to. Unset means all interfaces.
func (b *Builder) Address(addr string) *Builder {
	b.cfg.address = addr
	b.cfg.hasAddress = true
	return b
}

// Reloadable toggles development ("reloadable") mode.
func (b *Builder) Reloadable(on bool) *Builder {
	b.cfg.reloadable = on
	return b
}

// WorkerThreads sets the dedicated request-handling pool size. Values <= 0
// select inline dispatch and are valid.
func (b *Builder) WorkerThreads(n int) *Builder {
	b.cfg.workerThreads = n
	return b
}

// Allocator overrides the buffer allocation policy.
func (b *Builder) Allocator(a api.Allocator) *Builder {
	b.cfg.allocator = a
	return b
}

// PublicAddress sets the public URI used for redirects.
func (b *Builder) PublicAddress(u *url.URL) *Builder {
	b.cfg.publicAddress = u
	return b
}

// IndexFiles sets the ordered list of index file names.
func (b *Builder) IndexFiles(names ...string) *Builder {
	b.cfg.indexFiles = append([]string(nil), names...)
	return b
}

// TLS sets the TLS material. Unset means plaintext only.
func (b *Builder) TLS(cfg *tls.Config) *Builder {
	b.cfg.tlsConfig = cfg
	return b
}

// Other sets a free-form extension property.
func (b *Builder) Other(key, value string) *Builder {
	b.cfg.other[key] = value
	return b
}

// MaxContentLength sets the maximum aggregated request content length.
func (b *Builder) MaxContentLength(n int) *Builder {
	b.cfg.maxContentLength = n
	return b
}

// Build validates the accumulated settings and freezes them into a Config.
// The Builder must not be reused after Build.
func (b *Builder) Build() (*Config, error) {
	if b.cfg.port < 0 || b.cfg.port > 65535 {
		return nil, &ConfigError{Field: "port", Reason: fmt.Sprintf("%d outside [0, 65535]", b.cfg.port)}
	}
	if b.cfg.maxContentLength <= 0 {
		return nil, &ConfigError{Field: "maxContentLength", Reason: fmt.Sprintf("%d must be positive", b.cfg.maxContentLength)}
	}
	if b.cfg.hasAddress && b.cfg.address == "" {
		return nil, &ConfigError{Field: "address", Reason: "set but empty"}
	}
	if b.cfg.allocator == nil {
		b.cfg.allocator = pool.NewPooled()
	}
	if b.cfg.tlsConfig != nil {
		b.cfg.tlsConfig = b.cfg.tlsConfig.Clone()
	}
	cfg := b.cfg
	// Detach shared state so later Builder mutation cannot leak into the
	// frozen value.
	cfg.other = make(map[string]string, len(b.cfg.other))
	for k, v := range b.cfg.other {
		cfg.other[k] = v
	}
	cfg.indexFiles = append([]string(nil), b.cfg.indexFiles...)
	return &cfg, nil
}
