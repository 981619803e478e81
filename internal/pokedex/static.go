package pokedex

import (
	"context"
	"fmt"
)

// StaticCatalog serves a fixed species set. Useful for tests and for dev
// mode without outbound network access.
type StaticCatalog struct {
	Species map[string]Pokemon
}

// NewStaticCatalog builds a catalog from the given species.
func NewStaticCatalog(species ...Pokemon) *StaticCatalog {
	m := make(map[string]Pokemon, len(species))
	for _, p := range species {
		m[p.Name] = p
	}
	return &StaticCatalog{Species: m}
}

// Get looks the species up by name.
func (c *StaticCatalog) Get(_ context.Context, nameOrID string) (Pokemon, error) {
	p, ok := c.Species[nameOrID]
	if !ok {
		return Pokemon{}, fmt.Errorf("%w: unknown species %q", ErrCatalogFetch, nameOrID)
	}
	return p, nil
}

// List returns up to limit of the known species as references.
func (c *StaticCatalog) List(_ context.Context, limit int) ([]SpeciesRef, error) {
	refs := make([]SpeciesRef, 0, len(c.Species))
	for name := range c.Species {
		if len(refs) == limit {
			break
		}
		refs = append(refs, SpeciesRef{Name: name})
	}
	return refs, nil
}
