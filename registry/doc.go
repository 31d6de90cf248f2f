// Package registry lets independently compiled components register
// implementations of a shared contract and look them up later.
//
// A registry is declared against a base contract, usually an interface type.
// Every registered value is a reflect.Type that must satisfy that base:
// implement it when the base is an interface, or embed it when the base is a
// concrete struct type.
//
// Two flavours are provided:
//
//   - IdentityRegistry stores a set of types keyed by the type itself.
//   - NamedRegistry binds explicit names to types, so the same type may be
//     registered under several names.
//
// The base may be given as a path (see TypePath) instead of a type. It is
// resolved through a PathResolver, DefaultTypes unless stated otherwise, the
// first time it is needed. This lets a registry be declared before the package
// defining its contract has published it.
//
// Registries are meant to be populated at init time and are not safe for
// concurrent mutation. Autodiscover imports a fixed submodule from every
// component known to a discovery.ComponentLoader; those submodules register
// their types as a side effect.
//
//	var Questions = registry.NewIdentity(registry.BaseFor[Question](),
//		registry.WithDiscoveryModule("questions"))
//
//	var Boolean = Questions.MustRegister(reflect.TypeFor[*BooleanQuestion]())
package registry
