package domain

// Property is one listing row from properties.csv.
// Numeric-looking fields (rent, bedrooms) stay strings: the source data is
// free text and unparsable values must degrade, not fail.
type Property struct {
	// Identity
	PropertyID   string `json:"property_id"`
	PropertyCode string `json:"property_code"` // human-assigned, case-insensitive unique

	// Location
	City     string `json:"city"`
	Locality string `json:"locality"`
	Address  string `json:"address"`

	// Listing attributes
	Rent      string `json:"rent"`
	Bedrooms  string `json:"bedrooms"`
	Amenities string `json:"amenities"` // comma-separated
	Furnished string `json:"furnished"`

	// Status: available / occupied / withdrawn
	Status string `json:"status"`

	// Owner
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
	OwnerID    string `json:"owner_id"`

	CreatedAt string `json:"created_at"`
}

const PropertyStatusAvailable = "available"
