// FILE: lixenwraith/unilog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/unilog"
)

// Builder creates gnet and fasthttp adapters sharing one target.
// It can use an existing *unilog.Target or create a new one from a *unilog.Config
type Builder struct {
	target *unilog.Target
	cfg    *unilog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithTarget specifies an existing target to use for the adapters.
// If this is set WithConfig is ignored
func (b *Builder) WithTarget(t *unilog.Target) *Builder {
	if t == nil {
		b.err = fmt.Errorf("unilog/compat: provided target cannot be nil")
		return b
	}
	b.target = t
	return b
}

// WithConfig provides a configuration for a new target.
// If neither WithTarget nor WithConfig is used, a default target is created
func (b *Builder) WithConfig(cfg *unilog.Config) *Builder {
	b.cfg = cfg
	return b
}

// getTarget resolves the target to be used, creating one if necessary
func (b *Builder) getTarget() (*unilog.Target, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.target != nil {
		return b.target, nil
	}

	cfg := b.cfg
	if cfg == nil {
		cfg = unilog.DefaultConfig()
	}
	t, err := unilog.NewTarget(cfg)
	if err != nil {
		return nil, err
	}

	// Cache the new target for subsequent builds with this builder
	b.target = t
	return t, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	t, err := b.getTarget()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(t, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	t, err := b.getTarget()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(t, opts...), nil
}

// GetTarget returns the underlying target, creating it if needed
func (b *Builder) GetTarget() (*unilog.Target, error) {
	return b.getTarget()
}

// Example usage:
//
//	target, err := unilog.NewBuilder().Name("server").Build()
//	if err != nil { /* handle error */ }
//	defer target.Shutdown()
//
//	builder := compat.NewBuilder().WithTarget(target)
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
