package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DialerClient talks to the outbound-calling platform.
type DialerClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewDialerClient(baseURL, apiKey string, logger *zap.Logger) *DialerClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("authorization", apiKey).
		SetHeader("Content-Type", "application/json")

	return &DialerClient{httpClient: client, logger: logger}
}

// OutboundCallRequest describes one call to place: the number to dial and
// the task prompt the agent follows.
type OutboundCallRequest struct {
	PhoneNumber string `json:"phone_number"`
	Task        string `json:"task"`
	Voice       string `json:"voice,omitempty"`
	FromNumber  string `json:"from,omitempty"`
	MaxDuration int    `json:"max_duration,omitempty"`
}

type OutboundCallResponse struct {
	Status  string `json:"status"`
	CallID  string `json:"call_id"`
	Message string `json:"message"`
}

func (c *DialerClient) SendCall(ctx context.Context, req OutboundCallRequest) (*OutboundCallResponse, error) {
	var out OutboundCallResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/calls")
	if err := vendorErr("send call", resp, err); err != nil {
		return nil, err
	}
	if out.Status != "" && out.Status != "success" {
		return nil, fmt.Errorf("send call: dialer rejected: %s", out.Message)
	}
	c.logger.Info("Queued outbound call",
		zap.String("call_id", out.CallID),
		zap.String("to", req.PhoneNumber),
	)
	return &out, nil
}

// DialerCallDetails is the call state reported by the platform.
type DialerCallDetails struct {
	CallID           string  `json:"call_id"`
	Status           string  `json:"status"`
	CallLength       float64 `json:"call_length"` // minutes
	ConcatTranscript string  `json:"concatenated_transcript"`
	RecordingURL     string  `json:"recording_url"`
	To               string  `json:"to"`
	From             string  `json:"from"`
	Completed        bool    `json:"completed"`
}

func (c *DialerClient) GetCall(ctx context.Context, callID string) (*DialerCallDetails, error) {
	var out DialerCallDetails
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v1/calls/" + callID)
	if err := vendorErr("get call details", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *DialerClient) StopCall(ctx context.Context, callID string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Post("/v1/calls/" + callID + "/stop")
	return vendorErr("stop call", resp, err)
}
