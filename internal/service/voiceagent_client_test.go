package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The vendor has shipped multiple field-name generations; both must resolve
// to the same canonical Agent at the client boundary.
func TestVoiceAgentClient_ListAgents_FieldNameVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/list-agents", r.URL.Path)
		require.Equal(t, "Bearer retell-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"agent_id":                    "agent-1",
				"agent_name":                  "Rent Inquiry Bot",
				"voice_id":                    "nova",
				"general_prompt":              "You help renters.",
				"last_modification_timestamp": 1700000000000,
			},
			{
				"id":            "agent-2",
				"name":          "Old Shape Bot",
				"voice":         "alloy",
				"prompt":        "Legacy prompt.",
				"last_modified": 1600000000000,
			},
		})
	}))
	defer srv.Close()

	client := NewVoiceAgentClient(srv.URL, "retell-key", zap.NewNop())
	agents, err := client.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)

	assert.Equal(t, "agent-1", agents[0].AgentID)
	assert.Equal(t, "Rent Inquiry Bot", agents[0].Name)
	assert.Equal(t, "nova", agents[0].Voice)
	assert.Equal(t, int64(1700000000000), agents[0].LastModified)

	assert.Equal(t, "agent-2", agents[1].AgentID)
	assert.Equal(t, "Old Shape Bot", agents[1].Name)
	assert.Equal(t, "alloy", agents[1].Voice)
	assert.Equal(t, "Legacy prompt.", agents[1].Prompt)
	assert.Equal(t, int64(1600000000000), agents[1].LastModified)
}

func TestVoiceAgentClient_ListPhoneNumbers_Variants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"phone_number": "+14155550100", "inbound_agent_id": "agent-1"},
			{"number": "+14155550101", "outbound_agent": "agent-2"},
		})
	}))
	defer srv.Close()

	client := NewVoiceAgentClient(srv.URL, "k", zap.NewNop())
	numbers, err := client.ListPhoneNumbers(context.Background())
	require.NoError(t, err)
	require.Len(t, numbers, 2)
	assert.Equal(t, "+14155550100", numbers[0].Number)
	assert.Equal(t, "agent-1", numbers[0].InboundAgent)
	assert.Equal(t, "+14155550101", numbers[1].Number)
	assert.Equal(t, "agent-2", numbers[1].OutboundAgent)
}

func TestVoiceAgentClient_GetCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/get-call/call-9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"call_id":       "call-9",
			"call_status":   "ended",
			"from_number":   "+917095288950",
			"transcript":    "hello",
			"recording_url": "https://rec.example/call-9.wav",
		})
	}))
	defer srv.Close()

	client := NewVoiceAgentClient(srv.URL, "k", zap.NewNop())
	call, err := client.GetCall(context.Background(), "call-9")
	require.NoError(t, err)
	assert.Equal(t, "ended", call.Status)
	assert.Equal(t, "+917095288950", call.FromNumber)
	assert.Equal(t, "https://rec.example/call-9.wav", call.RecordingURL)
}

func TestVoiceAgentClient_VendorErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"agent not found"}`))
	}))
	defer srv.Close()

	client := NewVoiceAgentClient(srv.URL, "k", zap.NewNop())
	_, err := client.GetAgent(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
