package domain

// User is an application account stored in users.json. Authentication is
// deliberately loose: password hashes are plain sha256 and read endpoints
// fall back to the guest identity when no session is present.
type User struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"` // hex sha256

	// Sealed vendor credentials (see internal/secret)
	VoiceAgentToken string `json:"voice_agent_token,omitempty"`
	DialerToken     string `json:"dialer_token,omitempty"`

	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// GuestUserID scopes queries when authentication is disabled.
const GuestUserID = "guest"
