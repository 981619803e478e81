package pokedex

import (
	"context"
	"errors"
)

// ErrCatalogFetch indicates the species catalog was unreachable or returned
// an unusable response.
var ErrCatalogFetch = errors.New("species catalog fetch failed")

// SpeciesRef is one entry of the paginated species listing.
type SpeciesRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Pokemon carries the descriptive attributes of one species, merged from
// the catalog's pokemon and species endpoints.
type Pokemon struct {
	ID             int
	Name           string
	SpriteDefault  string
	SpriteShiny    string
	ArtworkDefault string
	ArtworkShiny   string
	Types          []string
	Legendary      bool
	Mythical       bool
}

// Image returns the sprite matching the shininess of a capture.
func (p Pokemon) Image(shiny bool) string {
	if shiny && p.SpriteShiny != "" {
		return p.SpriteShiny
	}
	return p.SpriteDefault
}

// Catalog represents the read-only external species data source.
type Catalog interface {
	Get(ctx context.Context, nameOrID string) (Pokemon, error)
	List(ctx context.Context, limit int) ([]SpeciesRef, error)
}
