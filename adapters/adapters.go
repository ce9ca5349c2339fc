// Package adapters implements core.Adapter for several Go HTTP client
// libraries. Adapters register themselves under one or more aliases in
// their init functions.
package adapters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kndndrj/sparqlbench/core"
)

var (
	errNoValidAliases     = errors.New("no valid library aliases provided")
	ErrUnsupportedLibrary = errors.New("no adapter registered for library")
)

var _ core.Adapter = (*wrappedAdapter)(nil)

// wrappedAdapter is returned from Mux and expands and validates parameters
// before they reach the library adapter.
type wrappedAdapter struct {
	name    string
	adapter core.Adapter
}

// registeredAdapters maps aliases to adapters.
var registeredAdapters = make(map[string]*wrappedAdapter)

// register registers a new adapter for a library. The first alias is the
// canonical library name.
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 || aliases[0] == "" {
		return errNoValidAliases
	}

	value := &wrappedAdapter{
		name:    aliases[0],
		adapter: adapter,
	}

	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		registeredAdapters[alias] = value
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(library string) (core.Adapter, error) {
	value, ok := registeredAdapters[library]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLibrary, library)
	}

	return value, nil
}

func (*Mux) AddAdapter(library string, adapter core.Adapter) error {
	return register(adapter, library)
}

// Libraries returns the canonical names of all registered libraries, sorted.
func Libraries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range registeredAdapters {
		if seen[a.name] {
			continue
		}
		seen[a.name] = true
		out = append(out, a.name)
	}
	sort.Strings(out)

	return out
}

// Canonical returns the canonical name of a library alias.
func Canonical(alias string) (string, error) {
	value, ok := registeredAdapters[alias]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLibrary, alias)
	}
	return value.name, nil
}

func (wa *wrappedAdapter) Connect(params *core.ClientParams) (core.Driver, error) {
	expanded := params.Expand()
	if err := expanded.Validate(); err != nil {
		return nil, fmt.Errorf("params.Validate: %w", err)
	}

	driver, err := wa.adapter.Connect(expanded)
	if err != nil {
		return nil, fmt.Errorf("%s: adapter.Connect: %w", wa.name, err)
	}

	return driver, nil
}

// NewLibrary is a wrapper around core.Library that uses the internal mux for
// adapter lookup.
func NewLibrary(params *core.ClientParams) (core.Library, error) {
	adapter, err := new(Mux).GetAdapter(params.Library)
	if err != nil {
		return core.Library{}, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	return core.Library{
		Params:  params,
		Adapter: adapter,
	}, nil
}
