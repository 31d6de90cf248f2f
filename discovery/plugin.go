package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"plugin"
	"slices"
	"strings"

	"github.com/specialistvlad/appregister/internal/fsutil"
)

// PluginExt is the file extension of plugin submodules.
const PluginExt = ".so"

// PluginLoader is a ComponentLoader whose components are directories and
// whose submodules are Go plugins inside them. Submodule "a.b" in directory
// dir is the file dir/a/b.so. Importing opens the plugin, which runs the init
// functions of the packages it contains; those perform the registrations.
type PluginLoader struct {
	dirs []string
	open func(path string) error
}

// NewPluginLoader creates a loader over dirs, scanned in the given order.
func NewPluginLoader(dirs ...string) *PluginLoader {
	return &PluginLoader{
		dirs: slices.Clone(dirs),
		open: openPlugin,
	}
}

// openPlugin opens a plugin. The runtime opens each file at most once per
// process, so importing the same submodule again is a no-op.
func openPlugin(path string) error {
	_, err := plugin.Open(path)
	return err
}

// SubmodulePath returns the file that holds submodule in dir.
func SubmodulePath(dir, submodule string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(submodule, ".", "/"))) + PluginExt
}

// Components implements ComponentLoader.
func (l *PluginLoader) Components() []string {
	return slices.Clone(l.dirs)
}

// Import implements ComponentLoader.
func (l *PluginLoader) Import(dir, submodule string) error {
	path := SubmodulePath(dir, submodule)
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && st.IsDir()) {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}
	if err != nil {
		return err
	}
	return l.open(path)
}

// HasSubmodule implements ComponentLoader.
func (l *PluginLoader) HasSubmodule(dir, submodule string) bool {
	return fsutil.IsFile(SubmodulePath(dir, submodule))
}

// Submodules lists the submodules available in dir, in lexical order.
func (l *PluginLoader) Submodules(dir string) ([]string, error) {
	files, err := fsutil.FindFilesByExtension(dir, PluginExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list plugins in %s: %w", dir, err)
	}
	subs := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, err
		}
		rel = strings.TrimSuffix(filepath.ToSlash(rel), PluginExt)
		subs = append(subs, strings.ReplaceAll(rel, "/", "."))
	}
	return subs, nil
}
