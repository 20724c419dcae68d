package httpapi

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDialer struct {
	sent    []service.OutboundCallRequest
	details map[string]*service.DialerCallDetails
	stopped []string
	sendErr error
}

func (f *fakeDialer) SendCall(_ context.Context, req service.OutboundCallRequest) (*service.OutboundCallResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, req)
	return &service.OutboundCallResponse{Status: "success", CallID: "vendor-1"}, nil
}

func (f *fakeDialer) GetCall(_ context.Context, callID string) (*service.DialerCallDetails, error) {
	d, ok := f.details[callID]
	if !ok {
		return nil, errors.New("unknown call")
	}
	return d, nil
}

func (f *fakeDialer) StopCall(_ context.Context, callID string) error {
	f.stopped = append(f.stopped, callID)
	return nil
}

type fakeVoiceCalls struct {
	calls []service.VendorCall
}

func (f *fakeVoiceCalls) ListCalls(_ context.Context, _ int) ([]service.VendorCall, error) {
	return f.calls, nil
}

type fakeLeadRecorder struct {
	recorded []domain.CallLog
}

func (f *fakeLeadRecorder) RecordCallLead(_ context.Context, call domain.CallLog) (*domain.Lead, error) {
	f.recorded = append(f.recorded, call)
	return &domain.Lead{LeadID: "lead-1", CallID: call.CallID}, nil
}

func newCallRouter(t *testing.T, dialer *fakeDialer, voice *fakeVoiceCalls, leads *fakeLeadRecorder) (*Router, repository.CallsRepo) {
	t.Helper()
	calls, err := repository.NewJSONCallsRepo(filepath.Join(t.TempDir(), "calls.json"))
	require.NoError(t, err)
	router := NewRouter(zap.NewNop())
	router.RegisterCallRoutes(NewCallHandler(calls, dialer, voice, leads, zap.NewNop()))
	return router, calls
}

func TestCalls_OutboundLogsCall(t *testing.T) {
	dialer := &fakeDialer{}
	router, calls := newCallRouter(t, dialer, &fakeVoiceCalls{}, &fakeLeadRecorder{})

	rec := doRequest(t, router, http.MethodPost, "/api/calls/outbound", map[string]any{
		"phone_number": "+91 7095288950",
		"task":         "Ask about the 2bhk in Gachibowli",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	logged := decodeResult[domain.CallLog](t, rec)
	assert.Equal(t, "vendor-1", logged.Result.VendorID)
	assert.Equal(t, "outbound", logged.Result.Direction)
	assert.Equal(t, "queued", logged.Result.Status)

	require.Len(t, dialer.sent, 1)
	assert.Equal(t, "+91 7095288950", dialer.sent[0].PhoneNumber)

	stored, err := calls.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCalls_OutboundRequiresPhone(t *testing.T) {
	router, _ := newCallRouter(t, &fakeDialer{}, &fakeVoiceCalls{}, &fakeLeadRecorder{})

	rec := doRequest(t, router, http.MethodPost, "/api/calls/outbound", map[string]any{
		"task": "no number",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalls_OutboundDialerFailure(t *testing.T) {
	dialer := &fakeDialer{sendErr: errors.New("dialer down")}
	router, _ := newCallRouter(t, dialer, &fakeVoiceCalls{}, &fakeLeadRecorder{})

	rec := doRequest(t, router, http.MethodPost, "/api/calls/outbound", map[string]any{
		"phone_number": "7095288950",
	}, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCalls_GetRefreshesAndRecordsLead(t *testing.T) {
	dialer := &fakeDialer{details: map[string]*service.DialerCallDetails{
		"vendor-1": {
			CallID:           "vendor-1",
			Status:           "completed",
			CallLength:       1.5,
			ConcatTranscript: "user: looking for a flat",
			RecordingURL:     "https://recordings.example/1.mp3",
			Completed:        true,
		},
	}}
	leads := &fakeLeadRecorder{}
	router, calls := newCallRouter(t, dialer, &fakeVoiceCalls{}, leads)

	logged, err := calls.Create(context.Background(), domain.CallLog{
		VendorID:  "vendor-1",
		Direction: "outbound",
		ToPhone:   "7095288950",
		Status:    "queued",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodGet, "/api/calls/"+logged.CallID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeResult[domain.CallLog](t, rec)
	assert.Equal(t, "completed", got.Result.Status)
	assert.Equal(t, 90, got.Result.DurationSec)
	assert.Equal(t, "user: looking for a flat", got.Result.Transcript)

	require.Len(t, leads.recorded, 1)
	assert.Equal(t, logged.CallID, leads.recorded[0].CallID)

	// A second read sees the completed status and skips the vendor.
	leads.recorded = nil
	rec = doRequest(t, router, http.MethodGet, "/api/calls/"+logged.CallID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, leads.recorded)
}

func TestCalls_Stop(t *testing.T) {
	dialer := &fakeDialer{}
	router, calls := newCallRouter(t, dialer, &fakeVoiceCalls{}, &fakeLeadRecorder{})

	logged, err := calls.Create(context.Background(), domain.CallLog{
		VendorID: "vendor-1", Direction: "outbound", Status: "queued",
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/calls/"+logged.CallID+"/stop", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"vendor-1"}, dialer.stopped)

	stopped := decodeResult[domain.CallLog](t, rec)
	assert.Equal(t, "stopped", stopped.Result.Status)
}

func TestCalls_SyncImportsNewVendorCalls(t *testing.T) {
	voice := &fakeVoiceCalls{calls: []service.VendorCall{
		{CallID: "v-1", FromNumber: "7095288950", Status: "ended", Transcript: "hi"},
		{CallID: "v-2", FromNumber: "9866011222", Status: "ended"},
	}}
	leads := &fakeLeadRecorder{}
	router, calls := newCallRouter(t, &fakeDialer{}, voice, leads)

	// v-1 is already in the log; only v-2 should import.
	_, err := calls.Create(context.Background(), domain.CallLog{VendorID: "v-1", Direction: "inbound"})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/calls/sync", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[map[string]int](t, rec)
	assert.Equal(t, 2, result.Result["fetched"])
	assert.Equal(t, 1, result.Result["imported"])

	require.Len(t, leads.recorded, 1)
	assert.Equal(t, "9866011222", leads.recorded[0].FromPhone)

	stored, err := calls.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
