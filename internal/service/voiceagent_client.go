package service

import (
	"context"
	"fmt"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// VoiceAgentClient talks to the conversational-voice-agent platform.
// The vendor API has shipped several generations of field names
// (agent_id vs id, phone_number vs number ...); every response is resolved
// through the alias tables below exactly once, here at the boundary, so the
// variants never leak into the rest of the service.
type VoiceAgentClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// Prioritized field-name aliases per canonical field, first hit wins.
var (
	agentIDAliases      = []string{"agent_id", "id"}
	agentNameAliases    = []string{"agent_name", "name"}
	agentVoiceAliases   = []string{"voice_id", "voice"}
	agentLangAliases    = []string{"language", "agent_language"}
	agentPromptAliases  = []string{"general_prompt", "prompt"}
	agentModifiedAlias  = []string{"last_modification_timestamp", "last_modified"}
	phoneNumberAliases  = []string{"phone_number", "number", "phone"}
	phoneInboundAliases = []string{"inbound_agent_id", "inbound_agent"}
	phoneOutboundAlias  = []string{"outbound_agent_id", "outbound_agent"}
	callIDAliases       = []string{"call_id", "id"}
	callStatusAliases   = []string{"call_status", "status"}
	transcriptAliases   = []string{"transcript", "transcript_text"}
	recordingAliases    = []string{"recording_url", "recording"}
)

func NewVoiceAgentClient(baseURL, apiKey string, logger *zap.Logger) *VoiceAgentClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &VoiceAgentClient{httpClient: client, logger: logger}
}

func (c *VoiceAgentClient) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var raw []map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/list-agents")
	if err := vendorErr("list agents", resp, err); err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(raw))
	for _, m := range raw {
		agents = append(agents, agentFromVendor(m))
	}
	return agents, nil
}

func (c *VoiceAgentClient) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	var raw map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/get-agent/" + agentID)
	if err := vendorErr("get agent", resp, err); err != nil {
		return nil, err
	}
	agent := agentFromVendor(raw)
	return &agent, nil
}

func (c *VoiceAgentClient) CreateAgent(ctx context.Context, payload map[string]any) (*domain.Agent, error) {
	var raw map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&raw).
		Post("/create-agent")
	if err := vendorErr("create agent", resp, err); err != nil {
		return nil, err
	}
	agent := agentFromVendor(raw)
	c.logger.Info("Created voice agent", zap.String("agent_id", agent.AgentID))
	return &agent, nil
}

func (c *VoiceAgentClient) UpdateAgent(ctx context.Context, agentID string, payload map[string]any) (*domain.Agent, error) {
	var raw map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&raw).
		Patch("/update-agent/" + agentID)
	if err := vendorErr("update agent", resp, err); err != nil {
		return nil, err
	}
	agent := agentFromVendor(raw)
	return &agent, nil
}

func (c *VoiceAgentClient) DeleteAgent(ctx context.Context, agentID string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Delete("/delete-agent/" + agentID)
	return vendorErr("delete agent", resp, err)
}

func (c *VoiceAgentClient) ListPhoneNumbers(ctx context.Context) ([]domain.PhoneNumber, error) {
	var raw []map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/list-phone-numbers")
	if err := vendorErr("list phone numbers", resp, err); err != nil {
		return nil, err
	}

	numbers := make([]domain.PhoneNumber, 0, len(raw))
	for _, m := range raw {
		numbers = append(numbers, domain.PhoneNumber{
			Number:        pickString(m, phoneNumberAliases),
			AgentID:       pickString(m, agentIDAliases),
			InboundAgent:  pickString(m, phoneInboundAliases),
			OutboundAgent: pickString(m, phoneOutboundAlias),
		})
	}
	return numbers, nil
}

// WebCall is a browser call session created on the vendor platform.
type WebCall struct {
	CallID      string `json:"call_id"`
	AccessToken string `json:"access_token"`
	AgentID     string `json:"agent_id"`
}

func (c *VoiceAgentClient) CreateWebCall(ctx context.Context, agentID string) (*WebCall, error) {
	var raw map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"agent_id": agentID}).
		SetResult(&raw).
		Post("/v2/create-web-call")
	if err := vendorErr("create web call", resp, err); err != nil {
		return nil, err
	}
	return &WebCall{
		CallID:      pickString(raw, callIDAliases),
		AccessToken: pickString(raw, []string{"access_token", "token"}),
		AgentID:     pickString(raw, agentIDAliases),
	}, nil
}

// VendorCall is the canonical view of one call record on the platform.
type VendorCall struct {
	CallID       string `json:"call_id"`
	AgentID      string `json:"agent_id"`
	Status       string `json:"status"`
	FromNumber   string `json:"from_number"`
	ToNumber     string `json:"to_number"`
	Transcript   string `json:"transcript"`
	RecordingURL string `json:"recording_url"`
}

func (c *VoiceAgentClient) ListCalls(ctx context.Context, limit int) ([]VendorCall, error) {
	var raw []map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"limit": limit}).
		SetResult(&raw).
		Post("/v2/list-calls")
	if err := vendorErr("list calls", resp, err); err != nil {
		return nil, err
	}

	calls := make([]VendorCall, 0, len(raw))
	for _, m := range raw {
		calls = append(calls, callFromVendor(m))
	}
	return calls, nil
}

func (c *VoiceAgentClient) GetCall(ctx context.Context, callID string) (*VendorCall, error) {
	var raw map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/v2/get-call/" + callID)
	if err := vendorErr("get call", resp, err); err != nil {
		return nil, err
	}
	call := callFromVendor(raw)
	return &call, nil
}

func agentFromVendor(m map[string]any) domain.Agent {
	return domain.Agent{
		AgentID:      pickString(m, agentIDAliases),
		Name:         pickString(m, agentNameAliases),
		Voice:        pickString(m, agentVoiceAliases),
		Language:     pickString(m, agentLangAliases),
		Prompt:       pickString(m, agentPromptAliases),
		LastModified: pickInt64(m, agentModifiedAlias),
	}
}

func callFromVendor(m map[string]any) VendorCall {
	return VendorCall{
		CallID:       pickString(m, callIDAliases),
		AgentID:      pickString(m, agentIDAliases),
		Status:       pickString(m, callStatusAliases),
		FromNumber:   pickString(m, []string{"from_number", "from"}),
		ToNumber:     pickString(m, []string{"to_number", "to"}),
		Transcript:   pickString(m, transcriptAliases),
		RecordingURL: pickString(m, recordingAliases),
	}
}

func pickString(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func pickInt64(m map[string]any, aliases []string) int64 {
	for _, key := range aliases {
		if v, ok := m[key].(float64); ok {
			return int64(v)
		}
	}
	return 0
}

// vendorErr folds transport errors and non-2xx responses into one error.
func vendorErr(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp != nil && resp.IsError() {
		return fmt.Errorf("%s: vendor returned %d: %s", op, resp.StatusCode(), resp.String())
	}
	return nil
}
