package registry

import (
	"context"
	"errors"
	"reflect"

	"github.com/specialistvlad/appregister/discovery"
)

// DefaultDiscoveryModule is the submodule Autodiscover imports when neither
// the call nor the registry names one.
const DefaultDiscoveryModule = "registrations"

type options struct {
	name   string
	module string
	loader discovery.ComponentLoader
}

// Option configures a registry.
type Option func(*options)

// WithName sets the name used in errors and log records.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDiscoveryModule sets the submodule Autodiscover imports by default.
func WithDiscoveryModule(module string) Option {
	return func(o *options) {
		o.module = module
	}
}

// WithLoader sets the component loader used by Autodiscover. The default is
// discovery.DefaultCatalog.
func WithLoader(loader discovery.ComponentLoader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// core holds what both registry flavours share: the base contract and the
// discovery settings.
type core struct {
	base *Base
	options
}

func newCore(base *Base, opts []Option) core {
	c := core{
		base: base,
		options: options{
			module: DefaultDiscoveryModule,
			loader: discovery.DefaultCatalog,
		},
	}
	for _, opt := range opts {
		opt(&c.options)
	}
	if c.base == nil {
		c.base = &Base{}
	}
	return c
}

// Base returns the registry's base contract.
func (c *core) Base() *Base {
	return c.base
}

// Name returns the registry name, empty unless set with WithName.
func (c *core) Name() string {
	return c.name
}

// DiscoveryModule returns the submodule Autodiscover imports by default.
func (c *core) DiscoveryModule() string {
	return c.module
}

// IsValid reports whether t satisfies the base. It returns false when the base
// cannot be resolved.
func (c *core) IsValid(t reflect.Type) bool {
	base, err := c.base.Resolve()
	if err != nil {
		return false
	}
	return IsSubtype(t, base)
}

// validate resolves the base and checks t against it.
func (c *core) validate(op, key string, t reflect.Type) error {
	base, err := c.base.Resolve()
	if err != nil {
		var regErr *Error
		if errors.As(err, &regErr) {
			regErr.Registry = c.name
		}
		return err
	}
	if t == nil {
		return &Error{Op: op, Registry: c.name, Key: key, Err: ErrInvalidOperation, Detail: "nil type"}
	}
	if !IsSubtype(t, base) {
		return &Error{
			Op:       op,
			Registry: c.name,
			Key:      key,
			Err:      ErrInvalidOperation,
			Detail:   "not a subtype of " + TypePath(base),
		}
	}
	return nil
}

// Autodiscover imports module from every component the registry's loader
// knows about, in order. An empty module means the registry's discovery
// module. Submodules that do not exist are skipped; any other import failure
// is returned unchanged and registrations made before it are kept.
func (c *core) Autodiscover(ctx context.Context, module string) error {
	if module == "" {
		module = c.module
	}
	return discovery.Scan(ctx, c.loader, module)
}
