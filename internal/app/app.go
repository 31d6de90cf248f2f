package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/specialistvlad/appregister/discovery"
	"github.com/specialistvlad/appregister/internal/ctxlog"
	"github.com/specialistvlad/appregister/internal/manifest"
	"github.com/specialistvlad/appregister/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	logger   *slog.Logger
	config   *Config
	manifest *manifest.Manifest
	loader   discovery.ComponentLoader
}

// ComponentInfo describes one component the loader knows about.
type ComponentInfo struct {
	Name       string   // manifest name, empty when the manifest does not declare it
	Location   string   // what the loader imports from
	Submodules []string // nil when the loader cannot list them
}

// submoduleLister is implemented by loaders that can enumerate the
// submodules of a component, such as discovery.PluginLoader.
type submoduleLister interface {
	Submodules(location string) ([]string, error)
}

// NewApp loads the manifest named by cfg and returns an App whose logger
// writes to logW. A nil loader means a discovery.PluginLoader over the
// manifest's component directories.
func NewApp(logW io.Writer, cfg *Config, loader discovery.ComponentLoader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := manifest.Load(ctx, cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	if loader == nil {
		loader = discovery.NewPluginLoader(m.Dirs()...)
		logger.Debug("Plugin loader created.", "components", len(m.Components))
	}

	return &App{
		ctx:      ctx,
		logger:   logger,
		config:   cfg,
		manifest: m,
		loader:   loader,
	}, nil
}

// Context returns the App's base context, carrying its logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Manifest returns the loaded manifest.
func (a *App) Manifest() *manifest.Manifest {
	return a.manifest
}

// Loader returns the component loader discovery runs against.
func (a *App) Loader() discovery.ComponentLoader {
	return a.loader
}

// Module returns the submodule to discover. The first non-empty of
// override, the configured module and the manifest's module wins, falling
// back to registry.DefaultDiscoveryModule.
func (a *App) Module(override string) string {
	if override != "" {
		return override
	}
	if a.config.Module != "" {
		return a.config.Module
	}
	return a.manifest.DiscoveryModule(registry.DefaultDiscoveryModule)
}

// Components lists the loader's components in discovery order.
func (a *App) Components() ([]ComponentInfo, error) {
	lister, canList := a.loader.(submoduleLister)

	var infos []ComponentInfo
	for _, loc := range a.loader.Components() {
		info := ComponentInfo{Location: loc, Name: a.componentName(loc)}
		if canList {
			subs, err := lister.Submodules(loc)
			if err != nil {
				return nil, err
			}
			info.Submodules = subs
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (a *App) componentName(location string) string {
	for _, c := range a.manifest.Components {
		if c.Path == filepath.Clean(location) || c.Name == location {
			return c.Name
		}
	}
	return ""
}

// Discover scans every component for module (see Module) and returns the
// outcome at each location visited. On failure the results include the
// failing location and the error is returned unchanged.
func (a *App) Discover(module string) ([]discovery.Result, error) {
	module = a.Module(module)
	a.logger.Info("Running discovery.", "module", module)

	var results []discovery.Result
	err := discovery.Scan(a.ctx, a.loader, module, discovery.OnResult(func(r discovery.Result) {
		results = append(results, r)
	}))
	if err != nil {
		return results, err
	}

	a.logger.Info("Discovery finished.", "module", module, "components", len(results))
	return results, nil
}

// Types returns the paths published in registry.DefaultTypes, in lexical
// order.
func (a *App) Types() []string {
	return registry.DefaultTypes.Paths()
}
