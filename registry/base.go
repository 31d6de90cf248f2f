package registry

import (
	"errors"
	"reflect"
)

// Base is the contract a registry validates against. It is either a concrete
// type or a path that is resolved, once, the first time it is needed.
type Base struct {
	typ      reflect.Type
	path     string
	resolver PathResolver
}

// BaseOf returns a base that is already resolved to t.
func BaseOf(t reflect.Type) *Base {
	return &Base{typ: t, path: TypePath(t)}
}

// BaseFor returns a base resolved to T. Use an interface type to declare an
// interface contract: BaseFor[Question]().
func BaseFor[T any]() *Base {
	return BaseOf(reflect.TypeFor[T]())
}

// BasePath returns a base that resolves path through resolver when first
// needed. A nil resolver means DefaultTypes.
func BasePath(path string, resolver PathResolver) *Base {
	if resolver == nil {
		resolver = DefaultTypes
	}
	return &Base{path: path, resolver: resolver}
}

// Resolve returns the base type. A successful lookup is cached and never
// repeated; a failed one is not, so the path may resolve on a later call.
func (b *Base) Resolve() (reflect.Type, error) {
	if b.typ != nil {
		return b.typ, nil
	}
	if b.path == "" || b.resolver == nil {
		return nil, &Error{Op: "resolve", Key: b.path, Err: ErrImproperlyConfigured, Detail: "no base type or path"}
	}

	t, err := b.resolver.ResolvePath(b.path)
	if err != nil {
		detail := err.Error()
		var regErr *Error
		if errors.As(err, &regErr) {
			detail = regErr.Err.Error()
		}
		return nil, &Error{Op: "resolve", Key: b.path, Err: ErrImproperlyConfigured, Detail: detail}
	}
	if t == nil {
		return nil, &Error{Op: "resolve", Key: b.path, Err: ErrImproperlyConfigured, Detail: "path does not name a type"}
	}

	b.typ = t
	return t, nil
}

// Resolved reports whether the base type is known.
func (b *Base) Resolved() bool {
	return b.typ != nil
}

// Path returns the path the base was declared with, or the canonical path of
// its type.
func (b *Base) Path() string {
	return b.path
}

func (b *Base) String() string {
	if b.typ != nil {
		return TypePath(b.typ)
	}
	return b.path
}

// IsSubtype reports whether t satisfies base. For an interface base, t must
// implement it. For any other base, t must be base itself or a struct (or
// pointer to struct) that embeds base or *base, directly or through other
// embedded structs.
func IsSubtype(t, base reflect.Type) bool {
	if t == nil || base == nil {
		return false
	}
	if base.Kind() == reflect.Interface {
		return t.Implements(base)
	}
	return embeds(t, base, make(map[reflect.Type]bool))
}

func embeds(t, base reflect.Type, seen map[reflect.Type]bool) bool {
	if t == base {
		return true
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		if t == base {
			return true
		}
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return false
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if f.Type == base || embeds(f.Type, base, seen) {
			return true
		}
	}
	return false
}
