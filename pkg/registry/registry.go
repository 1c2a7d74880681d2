// Package registry binds composer names to Composer implementations.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"slices"
	"sync"

	"github.com/dukex/flowalert/pkg/composer"
)

// DefaultName is the name the default composer is registered under.
const DefaultName = "default"

// pluginSymbol is the exported variable a composer plugin must provide.
const pluginSymbol = "Composer"

var (
	ErrComposerSymbolNotFound = errors.New("composer symbol not found in plugin")
	ErrInvalidComposerSymbol  = errors.New("plugin symbol does not implement composer.Composer")
)

// NamedComposer is a composer loaded from a plugin together with its name.
type NamedComposer struct {
	Name     string
	Composer composer.Composer
}

// Registry maps names to composers. Lookups never fail: unknown names
// resolve to the default composer. Safe for concurrent use.
type Registry struct {
	logger    *slog.Logger
	mu        sync.RWMutex
	composers map[string]composer.Composer
	fallback  composer.Composer
}

// NewRegistry builds a registry holding def under DefaultName. A nil def
// uses composer.NewDefault().
func NewRegistry(logger *slog.Logger, def composer.Composer) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	if def == nil {
		def = composer.NewDefault()
	}

	return &Registry{
		logger:    logger,
		composers: map[string]composer.Composer{DefaultName: def},
		fallback:  def,
	}
}

// Register binds name to c, replacing any previous binding.
func (r *Registry) Register(name string, c composer.Composer) {
	if c == nil {
		r.logger.Warn("Ignoring nil composer registration", "name", name)

		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.composers[name]; exists {
		r.logger.Debug("Replacing composer", "name", name)
	}

	r.composers[name] = c
}

// Lookup returns the composer bound to name, or the default composer.
//
//nolint:ireturn // callers dispatch on the interface
func (r *Registry) Lookup(name string) composer.Composer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.composers[name]; ok {
		return c
	}

	return r.fallback
}

// Resolve is Lookup that also reports the name the composer is bound to:
// name itself when registered, DefaultName otherwise.
//
//nolint:ireturn // callers dispatch on the interface
func (r *Registry) Resolve(name string) (string, composer.Composer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.composers[name]; ok {
		return name, c
	}

	return DefaultName, r.fallback
}

// Default returns the composer unknown names resolve to.
//
//nolint:ireturn // callers dispatch on the interface
func (r *Registry) Default() composer.Composer {
	return r.fallback
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.composers))
	for name := range r.composers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// LoadComposerPlugins opens every <pluginsPath>/composers/**/*.so and returns
// the composers they export. A plugin's name is its file name without extension.
func (r *Registry) LoadComposerPlugins(ctx context.Context, pluginsPath string) ([]NamedComposer, error) {
	rootPath := filepath.Join(pluginsPath, "composers")

	l := r.logger.With(slog.String("path", rootPath))

	pluginPathList, err := fs.Glob(os.DirFS(rootPath), "**/*.so")
	if err != nil {
		return nil, err
	}

	topLevel, err := fs.Glob(os.DirFS(rootPath), "*.so")
	if err != nil {
		return nil, err
	}

	pluginPathList = append(topLevel, pluginPathList...)

	l.InfoContext(ctx, "Loading composer plugins", "count", len(pluginPathList))

	loaded := make([]NamedComposer, 0, len(pluginPathList))

	for _, p := range pluginPathList {
		c, err := openComposerPlugin(filepath.Join(rootPath, p))
		if err != nil {
			return nil, fmt.Errorf("load composer plugin %s: %w", p, err)
		}

		name := filepath.Base(p)
		name = name[:len(name)-len(filepath.Ext(name))]

		loaded = append(loaded, NamedComposer{Name: name, Composer: c})

		l.InfoContext(ctx, "Loaded composer plugin", slog.String("plugin", p), slog.String("name", name))
	}

	return loaded, nil
}

//nolint:ireturn // plugin symbols are interfaces
func openComposerPlugin(path string) (composer.Composer, error) {
	plg, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	symbol, err := plg.Lookup(pluginSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComposerSymbolNotFound, err)
	}

	// Exported variables are looked up as pointers to the variable.
	switch v := symbol.(type) {
	case *composer.Composer:
		if *v != nil {
			return *v, nil
		}
	case composer.Composer:
		return v, nil
	}

	return nil, ErrInvalidComposerSymbol
}
