package pokedex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a PokeAPI-compatible catalog over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Wire shapes as served by the catalog. These stay at the boundary; one
// mapping function converts them to the domain type.
type pokemonWire struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		FrontShiny   string `json:"front_shiny"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
				FrontShiny   string `json:"front_shiny"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

type speciesWire struct {
	IsLegendary bool `json:"is_legendary"`
	IsMythical  bool `json:"is_mythical"`
}

type listWire struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// Get fetches one species' attributes by name or numeric id, combining the
// pokemon endpoint with the legendary/mythical classification endpoint.
func (c *Client) Get(ctx context.Context, nameOrID string) (Pokemon, error) {
	var pw pokemonWire
	if err := c.getJSON(ctx, "/pokemon/"+nameOrID, &pw); err != nil {
		return Pokemon{}, err
	}

	var sw speciesWire
	if err := c.getJSON(ctx, "/pokemon-species/"+nameOrID, &sw); err != nil {
		return Pokemon{}, err
	}

	return mapPokemon(pw, sw), nil
}

// List returns up to limit species name/reference pairs.
func (c *Client) List(ctx context.Context, limit int) ([]SpeciesRef, error) {
	var lw listWire
	if err := c.getJSON(ctx, fmt.Sprintf("/pokemon?limit=%d", limit), &lw); err != nil {
		return nil, err
	}

	refs := make([]SpeciesRef, 0, len(lw.Results))
	for _, r := range lw.Results {
		refs = append(refs, SpeciesRef{Name: r.Name, URL: r.URL})
	}
	return refs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogFetch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrCatalogFetch, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrCatalogFetch, path, err)
	}
	return nil
}

func mapPokemon(pw pokemonWire, sw speciesWire) Pokemon {
	p := Pokemon{
		ID:             pw.ID,
		Name:           pw.Name,
		SpriteDefault:  pw.Sprites.FrontDefault,
		SpriteShiny:    pw.Sprites.FrontShiny,
		ArtworkDefault: pw.Sprites.Other.OfficialArtwork.FrontDefault,
		ArtworkShiny:   pw.Sprites.Other.OfficialArtwork.FrontShiny,
		Legendary:      sw.IsLegendary,
		Mythical:       sw.IsMythical,
	}
	for _, t := range pw.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	return p
}
