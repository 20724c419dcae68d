package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/service"
	"go.uber.org/zap"
)

// voiceAgentAPI is the vendor surface this handler proxies.
type voiceAgentAPI interface {
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	GetAgent(ctx context.Context, agentID string) (*domain.Agent, error)
	CreateAgent(ctx context.Context, payload map[string]any) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, agentID string, payload map[string]any) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
	ListPhoneNumbers(ctx context.Context) ([]domain.PhoneNumber, error)
	CreateWebCall(ctx context.Context, agentID string) (*service.WebCall, error)
}

// VoiceAgentHandler is a thin proxy over the voice platform. Vendor
// failures surface as 502 with the folded vendor error already logged.
type VoiceAgentHandler struct {
	voice  voiceAgentAPI
	logger *zap.Logger
}

func NewVoiceAgentHandler(voice voiceAgentAPI, logger *zap.Logger) *VoiceAgentHandler {
	return &VoiceAgentHandler{voice: voice, logger: logger}
}

func (h *VoiceAgentHandler) Agents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		agents, err := h.voice.ListAgents(r.Context())
		if err != nil {
			h.vendorFail(w, "list agents", err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(agents))
	case http.MethodPost:
		var payload map[string]any
		if err := readBodyJSON(r, 1<<20, &payload); err != nil || len(payload) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		agent, err := h.voice.CreateAgent(r.Context(), payload)
		if err != nil {
			h.vendorFail(w, "create agent", err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(agent))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *VoiceAgentHandler) AgentByID(w http.ResponseWriter, r *http.Request) {
	agentID := strings.TrimPrefix(r.URL.Path, "/api/voice/agents/")
	if agentID == "" || strings.Contains(agentID, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		agent, err := h.voice.GetAgent(r.Context(), agentID)
		if err != nil {
			h.vendorFail(w, "get agent", err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(agent))
	case http.MethodPut, http.MethodPatch:
		var payload map[string]any
		if err := readBodyJSON(r, 1<<20, &payload); err != nil || len(payload) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		agent, err := h.voice.UpdateAgent(r.Context(), agentID, payload)
		if err != nil {
			h.vendorFail(w, "update agent", err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(agent))
	case http.MethodDelete:
		if err := h.voice.DeleteAgent(r.Context(), agentID); err != nil {
			h.vendorFail(w, "delete agent", err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"deleted": agentID}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *VoiceAgentHandler) PhoneNumbers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	numbers, err := h.voice.ListPhoneNumbers(r.Context())
	if err != nil {
		h.vendorFail(w, "list phone numbers", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(numbers))
}

// WebCall opens a browser call session and hands the access token back.
func (h *VoiceAgentHandler) WebCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		AgentID string `json:"agent_id"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.AgentID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("agent_id is required"))
		return
	}
	call, err := h.voice.CreateWebCall(r.Context(), body.AgentID)
	if err != nil {
		h.vendorFail(w, "create web call", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(call))
}

func (h *VoiceAgentHandler) vendorFail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("voice vendor call failed", zap.String("op", op), zap.Error(err))
	writeJSON(w, http.StatusBadGateway, Fail("voice platform error"))
}
