package discovery

import (
	"fmt"
	"log/slog"
	"slices"
)

// InitFunc performs a submodule's registrations.
type InitFunc func() error

// Catalog is an in-process ComponentLoader. Components compiled into the
// binary install themselves and provide their submodules from init:
//
//	func init() {
//		discovery.DefaultCatalog.Install("quiz")
//		discovery.DefaultCatalog.MustProvide("quiz", "questions", registerQuestions)
//	}
//
// A submodule's InitFunc runs at most once successfully; later imports of
// the same submodule are no-ops. An InitFunc that fails runs again on the
// next import.
type Catalog struct {
	components []string
	submodules map[string]map[string]InitFunc
	imported   map[string]map[string]bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		submodules: make(map[string]map[string]InitFunc),
		imported:   make(map[string]map[string]bool),
	}
}

// DefaultCatalog is the process-wide catalog registries use unless given
// another loader.
var DefaultCatalog = NewCatalog()

// Install appends locations to the component list. Locations already
// installed keep their position.
func (c *Catalog) Install(locations ...string) {
	for _, loc := range locations {
		if slices.Contains(c.components, loc) {
			continue
		}
		c.components = append(c.components, loc)
		slog.Debug("Installed component.", "component", loc)
	}
}

// Uninstall removes location from the component list. Its submodules stay
// provided and can be installed again.
func (c *Catalog) Uninstall(location string) {
	c.components = slices.DeleteFunc(c.components, func(loc string) bool {
		return loc == location
	})
}

// Provide makes submodule importable from location.
func (c *Catalog) Provide(location, submodule string, fn InitFunc) error {
	if location == "" || submodule == "" {
		return fmt.Errorf("discovery: provide %s.%s: empty location or submodule", location, submodule)
	}
	if fn == nil {
		return fmt.Errorf("discovery: provide %s.%s: nil init function", location, submodule)
	}
	subs, ok := c.submodules[location]
	if !ok {
		subs = make(map[string]InitFunc)
		c.submodules[location] = subs
	}
	if _, exists := subs[submodule]; exists {
		return fmt.Errorf("discovery: submodule %s.%s already provided", location, submodule)
	}
	subs[submodule] = fn
	return nil
}

// MustProvide is like Provide but panics on error.
func (c *Catalog) MustProvide(location, submodule string, fn InitFunc) {
	if err := c.Provide(location, submodule, fn); err != nil {
		panic(err)
	}
}

// Components implements ComponentLoader. The returned slice is a copy.
func (c *Catalog) Components() []string {
	return slices.Clone(c.components)
}

// Import implements ComponentLoader.
func (c *Catalog) Import(location, submodule string) error {
	fn, ok := c.submodules[location][submodule]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrModuleNotFound, location, submodule)
	}
	if c.imported[location][submodule] {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	if c.imported[location] == nil {
		c.imported[location] = make(map[string]bool)
	}
	c.imported[location][submodule] = true
	return nil
}

// HasSubmodule implements ComponentLoader.
func (c *Catalog) HasSubmodule(location, submodule string) bool {
	_, ok := c.submodules[location][submodule]
	return ok
}

// Forget marks every submodule as not imported, so the next scan runs their
// init functions again. Tests call it after clearing the registries those
// functions fill.
func (c *Catalog) Forget() {
	c.imported = make(map[string]map[string]bool)
}

// Reset removes every component and submodule.
func (c *Catalog) Reset() {
	c.components = nil
	c.submodules = make(map[string]map[string]InitFunc)
	c.imported = make(map[string]map[string]bool)
}
