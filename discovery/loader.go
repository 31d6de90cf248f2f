package discovery

import "errors"

// ErrModuleNotFound is returned by ComponentLoader.Import when the requested
// module does not exist.
var ErrModuleNotFound = errors.New("module not found")

// ErrEmptySubmodule is returned by Scan when no submodule is named.
var ErrEmptySubmodule = errors.New("discovery: empty submodule")

// ComponentLoader gives access to the components of a host.
type ComponentLoader interface {
	// Components returns the component locations in discovery order.
	Components() []string

	// Import loads submodule from location, running its registrations. It
	// returns an error wrapping ErrModuleNotFound when a module is missing,
	// or whatever error the module itself failed with.
	Import(location, submodule string) error

	// HasSubmodule reports whether location carries submodule. It tells a
	// missing submodule apart from one that exists but failed to import.
	HasSubmodule(location, submodule string) bool
}
