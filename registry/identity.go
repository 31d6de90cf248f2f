package registry

import (
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// TypeSet is a set of types.
type TypeSet map[reflect.Type]struct{}

// Contains reports whether t is in the set.
func (s TypeSet) Contains(t reflect.Type) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members ordered by TypePath.
func (s TypeSet) Sorted() []reflect.Type {
	return slices.SortedFunc(maps.Keys(s), func(a, b reflect.Type) int {
		return strings.Compare(TypePath(a), TypePath(b))
	})
}

// IdentityRegistry is a set of types satisfying a base, keyed by the types
// themselves.
type IdentityRegistry struct {
	core
	entries TypeSet
}

// NewIdentity creates an empty identity registry validating against base.
func NewIdentity(base *Base, opts ...Option) *IdentityRegistry {
	return &IdentityRegistry{
		core:    newCore(base, opts),
		entries: make(TypeSet),
	}
}

// Register adds t and returns it unchanged, so a registration can double as a
// declaration:
//
//	var Boolean = Questions.MustRegister(reflect.TypeFor[*BooleanQuestion]())
//
// It fails with ErrInvalidOperation when t does not satisfy the base and with
// ErrAlreadyRegistered when t is already present. Errors resolving a path base
// (ErrImproperlyConfigured) are returned as is.
func (r *IdentityRegistry) Register(t reflect.Type) (reflect.Type, error) {
	key := TypePath(t)
	if err := r.validate("register", key, t); err != nil {
		return nil, err
	}
	if r.IsRegistered(t) {
		return nil, &Error{Op: "register", Registry: r.name, Key: key, Err: ErrAlreadyRegistered}
	}
	r.entries[t] = struct{}{}
	slog.Debug("Registered type.", "registry", r.name, "type", key)
	return t, nil
}

// MustRegister is like Register but panics on error. It is meant for package
// level declarations and init functions.
func (r *IdentityRegistry) MustRegister(t reflect.Type) reflect.Type {
	t, err := r.Register(t)
	if err != nil {
		panic(err)
	}
	return t
}

// RegisterType registers T with r.
func RegisterType[T any](r *IdentityRegistry) (reflect.Type, error) {
	return r.Register(reflect.TypeFor[T]())
}

// Unregister removes t. It fails with ErrNotFound when t is not registered.
func (r *IdentityRegistry) Unregister(t reflect.Type) error {
	if !r.IsRegistered(t) {
		return &Error{Op: "unregister", Registry: r.name, Key: TypePath(t), Err: ErrNotFound}
	}
	delete(r.entries, t)
	slog.Debug("Unregistered type.", "registry", r.name, "type", TypePath(t))
	return nil
}

// All returns the registry's backing set, not a copy. Changes made through it
// change the registry, and it stops tracking the registry after Clear.
func (r *IdentityRegistry) All() TypeSet {
	return r.entries
}

// IsRegistered reports whether t itself is registered.
func (r *IdentityRegistry) IsRegistered(t reflect.Type) bool {
	return r.entries.Contains(t)
}

// Len returns the number of registered types.
func (r *IdentityRegistry) Len() int {
	return len(r.entries)
}

// Types iterates over the registered types in no particular order.
func (r *IdentityRegistry) Types() iter.Seq[reflect.Type] {
	return maps.Keys(r.entries)
}

// Sorted returns the registered types ordered by TypePath.
func (r *IdentityRegistry) Sorted() []reflect.Type {
	return r.entries.Sorted()
}

// Clear empties the registry by replacing its backing set.
func (r *IdentityRegistry) Clear() {
	r.entries = make(TypeSet)
}
