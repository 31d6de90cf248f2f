package registry

import (
	"iter"
	"log/slog"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Binder completes a registration started with NamedRegistry.Bind.
type Binder func(t reflect.Type) (reflect.Type, error)

// NamedRegistry binds names to types satisfying a base. Names are unique; a
// type may be bound under several names. Iteration follows insertion order.
type NamedRegistry struct {
	core
	entries *orderedmap.OrderedMap[string, reflect.Type]
}

// NewNamed creates an empty named registry validating against base.
func NewNamed(base *Base, opts ...Option) *NamedRegistry {
	return &NamedRegistry{
		core:    newCore(base, opts),
		entries: orderedmap.New[string, reflect.Type](),
	}
}

// Register binds name to t and returns t unchanged. The name is checked first:
// a bound name fails with ErrAlreadyRegistered whatever t is. A nil t, or one
// that does not satisfy the base, fails with ErrInvalidOperation.
func (r *NamedRegistry) Register(name string, t reflect.Type) (reflect.Type, error) {
	if r.IsRegistered(name) {
		return nil, &Error{Op: "register", Registry: r.name, Key: name, Err: ErrAlreadyRegistered}
	}
	if err := r.validate("register", name, t); err != nil {
		return nil, err
	}
	r.entries.Set(name, t)
	slog.Debug("Registered type.", "registry", r.name, "name", name, "type", TypePath(t))
	return t, nil
}

// Bind checks that name is free and returns a Binder that registers a type
// under it later. Nothing is reserved: the Binder runs the full Register and
// fails if name was bound in the meantime.
func (r *NamedRegistry) Bind(name string) (Binder, error) {
	if r.IsRegistered(name) {
		return nil, &Error{Op: "register", Registry: r.name, Key: name, Err: ErrAlreadyRegistered}
	}
	return func(t reflect.Type) (reflect.Type, error) {
		return r.Register(name, t)
	}, nil
}

// MustRegister is like Register but panics on error.
func (r *NamedRegistry) MustRegister(name string, t reflect.Type) reflect.Type {
	t, err := r.Register(name, t)
	if err != nil {
		panic(err)
	}
	return t
}

// RegisterNamed binds name to T in r.
func RegisterNamed[T any](r *NamedRegistry, name string) (reflect.Type, error) {
	return r.Register(name, reflect.TypeFor[T]())
}

// Unregister removes the binding for name. It fails with ErrNotFound when
// name is not bound.
func (r *NamedRegistry) Unregister(name string) error {
	if _, ok := r.entries.Delete(name); !ok {
		return &Error{Op: "unregister", Registry: r.name, Key: name, Err: ErrNotFound}
	}
	slog.Debug("Unregistered name.", "registry", r.name, "name", name)
	return nil
}

// Lookup returns the type bound to name, or ErrNotFound.
func (r *NamedRegistry) Lookup(name string) (reflect.Type, error) {
	t, ok := r.entries.Get(name)
	if !ok {
		return nil, &Error{Op: "lookup", Registry: r.name, Key: name, Err: ErrNotFound}
	}
	return t, nil
}

// Get returns the type bound to name and whether it was found.
func (r *NamedRegistry) Get(name string) (reflect.Type, bool) {
	return r.entries.Get(name)
}

// Names returns the bound names in insertion order.
func (r *NamedRegistry) Names() []string {
	names := make([]string, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns the registry's backing map, not a copy. Changes made through it
// change the registry, and it stops tracking the registry after Clear.
func (r *NamedRegistry) All() *orderedmap.OrderedMap[string, reflect.Type] {
	return r.entries
}

// Entries iterates over the bindings in insertion order.
func (r *NamedRegistry) Entries() iter.Seq2[string, reflect.Type] {
	return func(yield func(string, reflect.Type) bool) {
		for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// IsRegistered reports whether name is bound. Unlike
// IdentityRegistry.IsRegistered it takes a name, not a type.
func (r *NamedRegistry) IsRegistered(name string) bool {
	_, ok := r.entries.Get(name)
	return ok
}

// Contains reports whether name is bound.
func (r *NamedRegistry) Contains(name string) bool {
	return r.IsRegistered(name)
}

// Len returns the number of bound names.
func (r *NamedRegistry) Len() int {
	return r.entries.Len()
}

// Clear removes every binding by replacing the backing map.
func (r *NamedRegistry) Clear() {
	r.entries = orderedmap.New[string, reflect.Type]()
}
