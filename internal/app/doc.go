// Package app contains the host application the CLI drives. It loads the
// host manifest, builds a component loader over the components it declares
// and runs discovery, decoupled from any specific entrypoint.
package app
