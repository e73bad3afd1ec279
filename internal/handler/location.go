package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

// LocationStore is the store surface the geofence endpoints need.
type LocationStore interface {
	ListLocations(ctx context.Context) ([]model.ValidLocation, error)
	UpsertLocation(ctx context.Context, loc *model.ValidLocation) error
}

type LocationHandler struct {
	store LocationStore
}

func NewLocationHandler(store LocationStore) *LocationHandler {
	return &LocationHandler{store: store}
}

func (h *LocationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/locations", h.HandleList)
	mux.HandleFunc("POST /api/locations", h.HandleUpsert)
}

func (h *LocationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		log.Printf("handler: list locations: %v", err)
		writeError(withRequestLocale(r), w, http.StatusInternalServerError, "error.persistence", nil)
		return
	}
	if locations == nil {
		locations = []model.ValidLocation{}
	}
	writeJSON(w, map[string]any{"locations": locations})
}

func (h *LocationHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestLocale(r)

	var loc model.ValidLocation
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "error.bad_request", nil)
		return
	}
	if loc.Name == "" || loc.AllowedRadius <= 0 {
		writeError(ctx, w, http.StatusBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.store.UpsertLocation(r.Context(), &loc); err != nil {
		log.Printf("handler: upsert location: %v", err)
		writeError(ctx, w, http.StatusInternalServerError, "error.persistence", nil)
		return
	}
	writeJSON(w, loc)
}
