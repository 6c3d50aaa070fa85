package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	scalargo "github.com/bdpiprava/scalar-go"

	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/search"
)

// Searcher is the search core as seen by the HTTP layer.
type Searcher interface {
	DiscoverBrands(ctx context.Context, keyword string) []models.BrandOption
	SearchProducts(ctx context.Context, req search.Request) search.Response
}

type Handlers struct {
	searcher     Searcher
	defaultLimit int
	logger       *slog.Logger
}

func NewHandlers(searcher Searcher, defaultLimit int, logger *slog.Logger) *Handlers {
	if defaultLimit <= 0 {
		defaultLimit = search.DefaultLimit
	}
	return &Handlers{
		searcher:     searcher,
		defaultLimit: defaultLimit,
		logger:       logger.With("component", "api"),
	}
}

// BrandsResponse lists the brands found for a keyword
type BrandsResponse struct {
	Keyword string               `json:"keyword"`
	Brands  []models.BrandOption `json:"brands"`
}

// ProductsResponse is a completed product search
type ProductsResponse struct {
	ID       string           `json:"id"`
	Keyword  string           `json:"keyword"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetBrands handles brand discovery for ?keyword=
func (h *Handlers) GetBrands(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		h.respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	h.respondJSON(w, http.StatusOK, BrandsResponse{
		Keyword: keyword,
		Brands:  h.searcher.DiscoverBrands(r.Context(), keyword),
	})
}

// SearchProducts runs a product search for the posted request
func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		h.respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}
	if req.Limit < 0 {
		h.respondError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}
	if req.Limit == 0 {
		req.Limit = h.defaultLimit
	}

	resp := h.searcher.SearchProducts(r.Context(), req)
	h.respondJSON(w, http.StatusOK, ProductsResponse{
		ID:       resp.ID,
		Keyword:  resp.Keyword,
		Count:    len(resp.Products),
		Products: resp.Products,
	})
}

// Docs renders the API reference from the OpenAPI document in specDir.
func (h *Handlers) Docs(specDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, err := scalargo.NewV2(
			scalargo.WithSpecDir(specDir),
			scalargo.WithMetaDataOpts(
				scalargo.WithTitle("Compuzone Search API"),
			),
		)
		if err != nil {
			h.logger.Error("failed to render docs", "error", err, "dir", specDir)
			h.respondError(w, http.StatusInternalServerError, "docs unavailable")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
