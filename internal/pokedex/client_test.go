package pokedex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "sprites": {
    "front_default": "https://img.example/pikachu.png",
    "front_shiny": "https://img.example/pikachu-shiny.png",
    "other": {
      "official-artwork": {
        "front_default": "https://img.example/pikachu-art.png",
        "front_shiny": "https://img.example/pikachu-art-shiny.png"
      }
    }
  },
  "types": [
    {"type": {"name": "electric"}}
  ]
}`

const pikachuSpeciesJSON = `{"is_legendary": false, "is_mythical": false}`

const mewSpeciesJSON = `{"is_legendary": false, "is_mythical": true}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(pikachuJSON))
	})
	mux.HandleFunc("/pokemon-species/pikachu", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(pikachuSpeciesJSON))
	})
	mux.HandleFunc("/pokemon/mew", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": 151, "name": "mew", "sprites": {}, "types": []}`))
	})
	mux.HandleFunc("/pokemon-species/mew", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(mewSpeciesJSON))
	})
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "3" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"results": [
            {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
            {"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"},
            {"name": "venusaur", "url": "https://pokeapi.co/api/v2/pokemon/3/"}
        ]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetMergesBothEndpoints(t *testing.T) {
	srv := testServer(t)
	client := NewClient(srv.URL)

	p, err := client.Get(context.Background(), "pikachu")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != 25 || p.Name != "pikachu" {
		t.Fatalf("unexpected identity: %+v", p)
	}
	if p.SpriteShiny != "https://img.example/pikachu-shiny.png" {
		t.Fatalf("unexpected shiny sprite: %s", p.SpriteShiny)
	}
	if p.ArtworkDefault != "https://img.example/pikachu-art.png" {
		t.Fatalf("unexpected artwork: %s", p.ArtworkDefault)
	}
	if len(p.Types) != 1 || p.Types[0] != "electric" {
		t.Fatalf("unexpected types: %v", p.Types)
	}
	if p.Legendary || p.Mythical {
		t.Fatal("pikachu must not be legendary or mythical")
	}
}

func TestGetMythicalClassification(t *testing.T) {
	srv := testServer(t)
	client := NewClient(srv.URL)

	p, err := client.Get(context.Background(), "mew")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.Mythical {
		t.Fatal("expected mew to be mythical")
	}
}

func TestListReturnsReferences(t *testing.T) {
	srv := testServer(t)
	client := NewClient(srv.URL)

	refs, err := client.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	if refs[0].Name != "bulbasaur" {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
}

func TestGetUnreachableCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Get(context.Background(), "pikachu"); !errors.Is(err, ErrCatalogFetch) {
		t.Fatalf("expected ErrCatalogFetch, got %v", err)
	}
	if _, err := client.List(context.Background(), 151); !errors.Is(err, ErrCatalogFetch) {
		t.Fatalf("expected ErrCatalogFetch, got %v", err)
	}
}

func TestGetMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Get(context.Background(), "pikachu"); !errors.Is(err, ErrCatalogFetch) {
		t.Fatalf("expected ErrCatalogFetch, got %v", err)
	}
}
