package domain

// Tenant is one seeker row from tenants.csv.
type Tenant struct {
	TenantID string `json:"tenant_id"`

	// Identity
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	WhatsappNumber string `json:"whatsapp_number"` // defaults to phone when absent
	Email          string `json:"email"`

	// Requirements
	City        string `json:"city"`
	Localities  string `json:"localities"` // comma-separated desired areas
	BudgetMin   string `json:"budget_min"`
	BudgetMax   string `json:"budget_max"`
	Bedrooms    string `json:"bedrooms"`
	Amenities   string `json:"amenities"` // comma-separated
	Preferences string `json:"preferences"`

	ConsentScope string `json:"consent_scope"`
	CreatedAt    string `json:"created_at"`
}
