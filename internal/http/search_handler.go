package httpapi

import (
	"context"
	"net/http"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/service"
	"go.uber.org/zap"
)

type listingSearcher interface {
	SearchListings(ctx context.Context, query string) ([]service.ExtractedListing, error)
}

type SearchHandler struct {
	search listingSearcher
	logger *zap.Logger
}

func NewSearchHandler(search listingSearcher, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// Listings runs a web search and returns the extracted listing facts.
func (h *SearchHandler) Listings(w http.ResponseWriter, r *http.Request) {
	var query string
	switch r.Method {
	case http.MethodGet:
		query = r.URL.Query().Get("q")
	case http.MethodPost:
		var body struct {
			Query string `json:"query"`
		}
		if err := readBodyJSON(r, 1<<20, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		query = body.Query
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if query == "" {
		writeJSON(w, http.StatusBadRequest, Fail("query is required"))
		return
	}

	listings, err := h.search.SearchListings(r.Context(), query)
	if err != nil {
		h.logger.Error("listing search failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("search platform error"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(listings))
}
