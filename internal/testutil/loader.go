// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"fmt"

	"github.com/specialistvlad/appregister/discovery"
)

// Submodule scripts one submodule of a ScriptedLoader component. Init runs on
// every import; a nil Init imports successfully and does nothing.
type Submodule struct {
	Init func() error
}

// ScriptedLoader is a discovery.ComponentLoader whose components and their
// submodules are declared up front by a test. It records every import
// attempt, including ones for submodules that do not exist.
type ScriptedLoader struct {
	Order   []string
	Modules map[string]map[string]Submodule
	Imports []string
}

// NewScriptedLoader creates a loader over the given components, in order.
func NewScriptedLoader(components ...string) *ScriptedLoader {
	return &ScriptedLoader{
		Order:   components,
		Modules: make(map[string]map[string]Submodule),
	}
}

// With adds submodule to component and returns the loader for chaining.
func (l *ScriptedLoader) With(component, submodule string, init func() error) *ScriptedLoader {
	if l.Modules[component] == nil {
		l.Modules[component] = make(map[string]Submodule)
	}
	l.Modules[component][submodule] = Submodule{Init: init}
	return l
}

// Components implements discovery.ComponentLoader.
func (l *ScriptedLoader) Components() []string {
	return l.Order
}

// Import implements discovery.ComponentLoader.
func (l *ScriptedLoader) Import(component, submodule string) error {
	l.Imports = append(l.Imports, component+"."+submodule)
	sub, ok := l.Modules[component][submodule]
	if !ok {
		return fmt.Errorf("%w: %s.%s", discovery.ErrModuleNotFound, component, submodule)
	}
	if sub.Init == nil {
		return nil
	}
	return sub.Init()
}

// HasSubmodule implements discovery.ComponentLoader.
func (l *ScriptedLoader) HasSubmodule(component, submodule string) bool {
	_, ok := l.Modules[component][submodule]
	return ok
}
