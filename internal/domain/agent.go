package domain

// Agent is the canonical view of a voice agent configured on the vendor
// platform. Vendor field-name variants are resolved at the client boundary
// (see service.VoiceAgentClient); these names never vary.
type Agent struct {
	AgentID      string `json:"agent_id"`
	Name         string `json:"name"`
	Voice        string `json:"voice"`
	Language     string `json:"language"`
	Prompt       string `json:"prompt"`
	LastModified int64  `json:"last_modified"` // unix millis
	OwnerID      string `json:"owner_id"`
}

// PhoneNumber is a vendor-provisioned number bound to an agent.
type PhoneNumber struct {
	Number        string `json:"number"`
	AgentID       string `json:"agent_id"`
	InboundAgent  string `json:"inbound_agent,omitempty"`
	OutboundAgent string `json:"outbound_agent,omitempty"`
}
