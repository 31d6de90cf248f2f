// Package discovery imports a named submodule from every component of a host
// so that the submodule's registrations take effect.
//
// A host is described by a ComponentLoader: an ordered list of component
// locations and a way to import a submodule from one of them. Two loaders are
// provided. Catalog is an in-process table filled at init time by components
// compiled into the binary. PluginLoader treats directories as components and
// opens Go plugins found in them.
//
// Scan tolerates components that do not carry the submodule but returns any
// other import failure unchanged, including a missing module imported
// transitively by a submodule that does exist.
package discovery
