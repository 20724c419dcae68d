package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/service"
	"go.uber.org/zap"
)

type outboundDialer interface {
	SendCall(ctx context.Context, req service.OutboundCallRequest) (*service.OutboundCallResponse, error)
	GetCall(ctx context.Context, callID string) (*service.DialerCallDetails, error)
	StopCall(ctx context.Context, callID string) error
}

type voiceCallLister interface {
	ListCalls(ctx context.Context, limit int) ([]service.VendorCall, error)
}

type callLeadRecorder interface {
	RecordCallLead(ctx context.Context, call domain.CallLog) (*domain.Lead, error)
}

// CallHandler keeps the local call log and drives the dialer. The stored
// record is the source of truth; vendor state folds in on read.
type CallHandler struct {
	calls  repository.CallsRepo
	dialer outboundDialer
	voice  voiceCallLister
	leads  callLeadRecorder
	logger *zap.Logger
}

func NewCallHandler(calls repository.CallsRepo, dialer outboundDialer, voice voiceCallLister, leads callLeadRecorder, logger *zap.Logger) *CallHandler {
	return &CallHandler{calls: calls, dialer: dialer, voice: voice, leads: leads, logger: logger}
}

func (h *CallHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	calls, err := h.calls.List(r.Context())
	if err != nil {
		h.logger.Error("list calls failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not list calls"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(calls))
}

// Outbound queues a call on the dialer and logs it locally.
func (h *CallHandler) Outbound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req service.OutboundCallRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil || req.PhoneNumber == "" {
		writeJSON(w, http.StatusBadRequest, Fail("phone_number is required"))
		return
	}

	sent, err := h.dialer.SendCall(r.Context(), req)
	if err != nil {
		h.logger.Error("outbound call failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("dialer platform error"))
		return
	}

	logged, err := h.calls.Create(r.Context(), domain.CallLog{
		VendorID:  sent.CallID,
		Direction: "outbound",
		FromPhone: req.FromNumber,
		ToPhone:   req.PhoneNumber,
		Status:    "queued",
	})
	if err != nil {
		h.logger.Error("log outbound call failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not log call"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(logged))
}

// ByID serves GET /api/calls/{id} and POST /api/calls/{id}/stop.
func (h *CallHandler) ByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/calls/")
	if strings.HasSuffix(rest, "/stop") {
		h.stop(w, r, strings.TrimSuffix(rest, "/stop"))
		return
	}
	if rest == "" || strings.Contains(rest, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	call, err := h.calls.Get(r.Context(), rest)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail("call not found"))
		return
	}
	if call.VendorID != "" && call.Status != "completed" {
		call = h.refresh(r.Context(), call)
	}
	writeJSON(w, http.StatusOK, Ok(call))
}

func (h *CallHandler) stop(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	call, err := h.calls.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail("call not found"))
		return
	}
	if call.VendorID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("call has no dialer session"))
		return
	}
	if err := h.dialer.StopCall(r.Context(), call.VendorID); err != nil {
		h.logger.Error("stop call failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("dialer platform error"))
		return
	}
	updated, err := h.calls.Update(r.Context(), id, map[string]any{"status": "stopped"})
	if err != nil {
		h.logger.Error("update stopped call failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not update call"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

// refresh folds the dialer's current view into the stored log. The first
// refresh that sees a completed call also materializes its lead.
func (h *CallHandler) refresh(ctx context.Context, call *domain.CallLog) *domain.CallLog {
	details, err := h.dialer.GetCall(ctx, call.VendorID)
	if err != nil {
		h.logger.Warn("call refresh failed",
			zap.String("call_id", call.CallID),
			zap.Error(err),
		)
		return call
	}

	patch := map[string]any{
		"status":       details.Status,
		"transcript":   details.ConcatTranscript,
		"duration_sec": int(details.CallLength * 60),
	}
	if details.RecordingURL != "" {
		patch["recording_url"] = details.RecordingURL
	}
	updated, err := h.calls.Update(ctx, call.CallID, patch)
	if err != nil {
		h.logger.Error("update call failed", zap.Error(err))
		return call
	}

	if details.Completed && call.Status != "completed" {
		if _, err := h.leads.RecordCallLead(ctx, *updated); err != nil {
			h.logger.Error("record call lead failed", zap.Error(err))
		}
	}
	return updated
}

// Sync pulls recent calls from the voice platform into the local log.
// Inbound calls the log has never seen each produce a lead.
func (h *CallHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 50)

	vendorCalls, err := h.voice.ListCalls(r.Context(), limit)
	if err != nil {
		h.logger.Error("list vendor calls failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("voice platform error"))
		return
	}

	existing, err := h.calls.List(r.Context())
	if err != nil {
		h.logger.Error("list calls failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not sync calls"))
		return
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		if c.VendorID != "" {
			seen[c.VendorID] = true
		}
	}

	imported := 0
	for _, vc := range vendorCalls {
		if vc.CallID == "" || seen[vc.CallID] {
			continue
		}
		logged, err := h.calls.Create(r.Context(), domain.CallLog{
			VendorID:     vc.CallID,
			AgentID:      vc.AgentID,
			Direction:    "inbound",
			FromPhone:    vc.FromNumber,
			ToPhone:      vc.ToNumber,
			Status:       vc.Status,
			Transcript:   vc.Transcript,
			RecordingURL: vc.RecordingURL,
		})
		if err != nil {
			h.logger.Error("log synced call failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not sync calls"))
			return
		}
		if _, err := h.leads.RecordCallLead(r.Context(), *logged); err != nil {
			h.logger.Error("record call lead failed", zap.Error(err))
		}
		imported++
	}

	h.logger.Info("Call sync finished",
		zap.Int("fetched", len(vendorCalls)),
		zap.Int("imported", imported),
	)
	writeJSON(w, http.StatusOK, Ok(map[string]int{"fetched": len(vendorCalls), "imported": imported}))
}
