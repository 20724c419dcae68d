package domain

// CallLog is one dialed or received call stored in calls.json.
type CallLog struct {
	CallID   string `json:"call_id"`
	VendorID string `json:"vendor_id,omitempty"` // id on the calling platform
	AgentID  string `json:"agent_id,omitempty"`

	Direction string `json:"direction"` // inbound / outbound
	FromPhone string `json:"from_phone"`
	ToPhone   string `json:"to_phone"`
	Status    string `json:"status"`

	Transcript   string `json:"transcript,omitempty"`
	RecordingURL string `json:"recording_url,omitempty"`
	DurationSec  int    `json:"duration_sec"`

	TenantID  string `json:"tenant_id,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt string `json:"created_at"`
}
