package domain

type LeadStatus string
type LeadChannel string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"

	LeadChannelVoice    LeadChannel = "voice"
	LeadChannelWhatsapp LeadChannel = "whatsapp"
	LeadChannelWeb      LeadChannel = "web"
	LeadChannelImport   LeadChannel = "import"
)

// Lead joins an optional tenant to an optional property. Either id may point
// at a record that no longer exists; consumers treat missing joins as
// unknown, never as an error.
type Lead struct {
	LeadID     string `json:"lead_id"`
	TenantID   string `json:"tenant_id,omitempty"`
	PropertyID string `json:"property_id,omitempty"`

	Channel    LeadChannel `json:"channel"`
	Status     LeadStatus  `json:"status"`
	MatchScore float64     `json:"match_score"`

	// Call artifacts (voice channel)
	CallID       string `json:"call_id,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
	RecordingURL string `json:"recording_url,omitempty"`

	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// VirtualLead is a lead synthesized on the fly by scoring a tenant against
// the property pool; it is never persisted.
type VirtualLead struct {
	TenantID     string    `json:"tenant_id"`
	TenantName   string    `json:"tenant_name"`
	Phone        string    `json:"phone"`
	MatchScore   float64   `json:"match_score"`
	MatchCount   int       `json:"match_count"`
	BestProperty *Property `json:"best_property,omitempty"`
}
