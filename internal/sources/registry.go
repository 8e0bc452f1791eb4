package sources

import (
	"fmt"

	"golang.org/x/text/language"
)

// Spec describes a source in configuration.
type Spec struct {
	Type     string `yaml:"type"`
	Location string `yaml:"location"`
}

// Registry holds named sources.
type Registry struct {
	sources map[string]Source
	order   []string
}

// NewRegistry creates a new source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry, replacing one with the same name.
func (r *Registry) Register(s Source) {
	if _, ok := r.sources[s.Name()]; !ok {
		r.order = append(r.order, s.Name())
	}
	r.sources[s.Name()] = s
}

// All returns all registered sources in registration order.
func (r *Registry) All() []Source {
	sources := make([]Source, 0, len(r.order))
	for _, name := range r.order {
		sources = append(sources, r.sources[name])
	}
	return sources
}

// Names returns the names of all registered sources in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// New builds a source from its spec. Sources are named after their
// position: "primary" for index 0, "fallback-N" after that. An empty
// location is accepted here and fails at Load, so the chain skips it.
func New(index int, spec Spec, client HTTPClient, locale language.Tag) (Source, error) {
	name := "primary"
	if index > 0 {
		name = fmt.Sprintf("fallback-%d", index)
	}

	switch spec.Type {
	case "http", "https":
		return NewHTTPSource(name, spec.Location, client), nil
	case "file":
		return NewFileSource(name, spec.Location), nil
	case "builtin":
		return NewBuiltinSource(locale), nil
	default:
		return nil, fmt.Errorf("%s: unknown source type %q", name, spec.Type)
	}
}

// FromSpecs registers one source per spec, in order.
func FromSpecs(specs []Spec, client HTTPClient, locale language.Tag) (*Registry, error) {
	r := NewRegistry()
	for i, spec := range specs {
		s, err := New(i, spec, client, locale)
		if err != nil {
			return nil, err
		}
		r.Register(s)
	}
	return r, nil
}
