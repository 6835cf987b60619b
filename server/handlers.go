// Package server exposes map generation over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/automoto/tilegen/config"
	"github.com/automoto/tilegen/generator"
)

type createRequest struct {
	generator.Request
	Seed *uint64 `json:"seed,omitempty"`
}

type createResponse struct {
	MapInfo
	Document string `json:"document"`
}

// Handler serves the map API backed by a Store.
type Handler struct {
	store *Store
	cfg   config.ServerConfig
}

func NewHandler(store *Store, cfg config.ServerConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// Routes configures all routes and returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/maps", h.ListMaps)
		r.Post("/maps", h.CreateMap)
		r.Get("/maps/{id}", h.GetMap)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// CreateMap handles POST /api/maps
func (h *Handler) CreateMap(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxRequestBody)
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Width > h.cfg.MaxCells || req.Height > h.cfg.MaxCells ||
		(req.Width > 0 && req.Height > 0 && req.Width*req.Height > h.cfg.MaxCells) {
		respondError(w, http.StatusBadRequest, "map too large")
		return
	}
	if n := req.Seeding.Count; n < 0 || (n > 0 && n > req.Width*req.Height) {
		respondError(w, http.StatusBadRequest, "seed count must be between 0 and width*height")
		return
	}
	if req.Orientation == "" {
		req.Orientation = config.Generate.Orientation
	}
	if req.LayerName == "" {
		req.LayerName = config.Generate.LayerName
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	res, err := generator.Generate(req.Request, generator.NewRand(seed))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	info := h.store.Put(MapInfo{
		Width:       req.Width,
		Height:      req.Height,
		Orientation: req.Orientation,
		Tilesets:    res.Registry.Len(),
		Points:      len(res.Points),
		Seed:        seed,
	}, res.Document)

	log.Printf("[server] generated map %s (%dx%d, %d seeds, seed=%d)",
		info.ID, info.Width, info.Height, info.Points, seed)

	respondJSON(w, http.StatusCreated, createResponse{MapInfo: info, Document: res.Document})
}

// ListMaps handles GET /api/maps
func (h *Handler) ListMaps(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.List())
}

// GetMap handles GET /api/maps/{id} and returns the raw TMX document.
func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, doc, ok := h.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "map not found")
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] encode error: %v", err)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
