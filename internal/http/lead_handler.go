package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"go.uber.org/zap"
)

// virtualLeadLister is the slice of the lead service this handler needs.
type virtualLeadLister interface {
	VirtualLeads(ctx context.Context) ([]domain.VirtualLead, error)
}

type LeadHandler struct {
	leads   repository.LeadsRepo
	virtual virtualLeadLister
	logger  *zap.Logger
}

func NewLeadHandler(leads repository.LeadsRepo, virtual virtualLeadLister, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, virtual: virtual, logger: logger}
}

func (h *LeadHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		leads, err := h.leads.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			h.logger.Error("list leads failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not list leads"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(leads))
	case http.MethodPost:
		var lead domain.Lead
		if err := readBodyJSON(r, 1<<20, &lead); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		if lead.Channel == "" {
			lead.Channel = domain.LeadChannelWeb
		}
		if lead.Status == "" {
			lead.Status = domain.LeadStatusNew
		}
		created, err := h.leads.Create(r.Context(), lead)
		if err != nil {
			h.logger.Error("create lead failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not create lead"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(created))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Virtual synthesizes a lead per tenant against the available pool.
func (h *LeadHandler) Virtual(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	leads, err := h.virtual.VirtualLeads(r.Context())
	if err != nil {
		h.logger.Error("virtual leads failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not compute virtual leads"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(leads))
}

func (h *LeadHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/leads/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		lead, err := h.leads.Get(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, Fail("lead not found"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(lead))
	case http.MethodPut, http.MethodPatch:
		var patch map[string]any
		if err := readBodyJSON(r, 1<<20, &patch); err != nil || len(patch) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		updated, err := h.leads.Update(r.Context(), id, patch)
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("lead not found"))
			return
		}
		if err != nil {
			h.logger.Error("update lead failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not update lead"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(updated))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
