package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// PathResolver turns a textual type path into a type.
type PathResolver interface {
	ResolvePath(path string) (reflect.Type, error)
}

// TypePath returns the canonical path of t: its import path and name joined by
// a dot, e.g. "github.com/acme/quiz.Question". Unnamed pointer types are
// prefixed with one "*" per level of indirection. Types without a package
// path (builtins, unnamed composites) use reflect's own spelling.
func TypePath(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	var prefix strings.Builder
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		prefix.WriteByte('*')
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return prefix.String() + t.String()
	}
	return prefix.String() + t.PkgPath() + "." + t.Name()
}

// TypeIndex maps textual paths to types. Packages publish the contracts they
// define so that registries elsewhere can refer to them by path without
// importing them.
type TypeIndex struct {
	types map[string]reflect.Type
}

// NewTypeIndex creates an empty index.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{types: make(map[string]reflect.Type)}
}

// DefaultTypes is the process-wide index used by BasePath when no resolver is
// given.
var DefaultTypes = NewTypeIndex()

// Publish binds t under its canonical TypePath and every alias. Publishing the
// same type twice is a no-op; binding a path that already names a different
// type fails with ErrAlreadyRegistered and leaves the index unchanged.
func (x *TypeIndex) Publish(t reflect.Type, aliases ...string) (string, error) {
	if t == nil {
		return "", &Error{Op: "publish", Key: "<nil>", Err: ErrInvalidOperation, Detail: "nil type"}
	}
	path := TypePath(t)
	paths := append([]string{path}, aliases...)
	for _, p := range paths {
		if p == "" {
			return "", &Error{Op: "publish", Key: path, Err: ErrInvalidOperation, Detail: "empty alias"}
		}
		if existing, ok := x.types[p]; ok && existing != t {
			return "", &Error{
				Op:     "publish",
				Key:    p,
				Err:    ErrAlreadyRegistered,
				Detail: fmt.Sprintf("path already names %s", TypePath(existing)),
			}
		}
	}
	for _, p := range paths {
		x.types[p] = t
	}
	slog.Debug("Published type.", "path", path, "aliases", aliases)
	return path, nil
}

// ResolvePath implements PathResolver.
func (x *TypeIndex) ResolvePath(path string) (reflect.Type, error) {
	t, ok := x.types[path]
	if !ok {
		return nil, &Error{Op: "resolve", Key: path, Err: ErrNotFound}
	}
	return t, nil
}

// Forget removes a path binding. Other paths bound to the same type stay.
func (x *TypeIndex) Forget(path string) {
	delete(x.types, path)
}

// Paths returns every bound path in lexical order.
func (x *TypeIndex) Paths() []string {
	paths := make([]string, 0, len(x.types))
	for p := range x.types {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Len returns the number of bound paths.
func (x *TypeIndex) Len() int {
	return len(x.types)
}

// Publish publishes T into DefaultTypes and returns its canonical path. It
// panics on conflict and is meant to be called from package init.
func Publish[T any](aliases ...string) string {
	path, err := DefaultTypes.Publish(reflect.TypeFor[T](), aliases...)
	if err != nil {
		panic(err)
	}
	return path
}
