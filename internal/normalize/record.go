// Package normalize maps heterogeneous upload rows into the canonical
// property/tenant schema and provides the phone and data-health helpers used
// for identity lookups and upload reports. Every function here is pure and
// total: bad input degrades to empty fields, it never errors.
package normalize

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Ordered legacy column aliases per canonical field. First non-empty wins.
var propertyAliases = map[string][]string{
	"city":        {"city", "City", "Location"},
	"locality":    {"locality", "Locality", "Area", "Neighbourhood"},
	"address":     {"address", "Address", "Full Address"},
	"rent":        {"rent", "Rent", "Budget", "Price"},
	"bedrooms":    {"bedrooms", "Bedrooms", "BHKtype", "BHK Type", "BHK"},
	"amenities":   {"amenities", "Amenities", "Facilities"},
	"furnished":   {"furnished", "Furnished", "Furnishing"},
	"status":      {"status", "Status"},
	"owner_name":  {"owner_name", "Owner", "Owner Name", "OwnerName"},
	"owner_phone": {"owner_phone", "Owner Phone", "OwnerPhone", "Contact", "Contact Number"},
}

var tenantAliases = map[string][]string{
	"name":            {"name", "Name", "Customer Name", "CustomerName", "Client Name"},
	"phone":           {"phone", "Phone", "Mobile", "Contact", "Contact Number"},
	"whatsapp_number": {"whatsapp_number", "Whatsapp", "WhatsApp", "Whatsapp Number"},
	"email":           {"email", "Email", "Mail", "Email Address"},
	"city":            {"city", "City", "Location"},
	"localities":      {"localities", "Localities", "Locality", "Preferred Locations", "Areas"},
	"budget_min":      {"budget_min", "BudgetMin", "Min Budget"},
	"budget_max":      {"budget_max", "BudgetMax", "Max Budget"},
	"bedrooms":        {"bedrooms", "Bedrooms", "BHKtype", "BHK Type", "BHK"},
	"amenities":       {"amenities", "Amenities", "Requirements"},
	"preferences":     {"preferences", "Preferences", "Notes", "Remarks"},
	"consent_scope":   {"consent_scope", "Consent"},
}

var propertyFields = []string{
	"city", "locality", "address", "rent", "bedrooms",
	"amenities", "furnished", "status", "owner_name", "owner_phone",
}

var tenantFields = []string{
	"name", "phone", "whatsapp_number", "email", "city", "localities",
	"budget_min", "budget_max", "bedrooms", "amenities", "preferences",
	"consent_scope",
}

// Fields normalized with FlattenList (may arrive as JSON arrays).
var listFields = map[string]bool{
	"amenities":     true,
	"localities":    true,
	"preferences":   true,
	"consent_scope": true,
}

// PropertyRow maps a raw upload row into the canonical property schema.
// Rows that already carry a canonical identifier pass through unchanged so
// mixed-generation files can coexist.
func PropertyRow(raw map[string]any) map[string]string {
	if hasCanonicalID(raw, "property_id") || hasCanonicalID(raw, "property_code") {
		return stringifyRow(raw)
	}

	out := map[string]string{"property_id": NewID("PROP")}
	for _, field := range propertyFields {
		out[field] = lookupAlias(raw, propertyAliases[field], listFields[field])
	}
	out["bedrooms"] = stripBHK(out["bedrooms"])
	out["property_code"] = ""
	return out
}

// TenantRow maps a raw upload row into the canonical tenant schema.
func TenantRow(raw map[string]any) map[string]string {
	if hasCanonicalID(raw, "tenant_id") {
		return stringifyRow(raw)
	}

	out := map[string]string{"tenant_id": NewID("TEN")}
	for _, field := range tenantFields {
		out[field] = lookupAlias(raw, tenantAliases[field], listFields[field])
	}
	out["bedrooms"] = stripBHK(out["bedrooms"])

	// Legacy sheets carry one combined Budget column ("15000-20000" or a
	// bare ceiling like "18000").
	if out["budget_min"] == "" && out["budget_max"] == "" {
		if combined := lookupAlias(raw, []string{"Budget", "budget"}, false); combined != "" {
			min, max := SplitBudget(combined)
			out["budget_min"] = min
			out["budget_max"] = max
		}
	}
	if out["whatsapp_number"] == "" {
		out["whatsapp_number"] = out["phone"]
	}
	return out
}

// SplitBudget splits a combined budget column on "-". A value without a
// dash is a ceiling: it becomes budget_max and budget_min stays empty.
func SplitBudget(s string) (min, max string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if i := strings.Index(s, "-"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return "", s
}

// FlattenList accepts a comma-separated string or an actual list and returns
// one comma-joined string. Anything else degrades to "".
func FlattenList(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []string:
		return strings.Join(trimAll(val), ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			} else if item != nil {
				parts = append(parts, fmt.Sprint(item))
			}
		}
		return strings.Join(trimAll(parts), ", ")
	default:
		return ""
	}
}

// NewID builds an opaque identifier unique within a file without any
// coordination: a timestamp component plus a short random suffix.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%06x", prefix, time.Now().UnixMilli(), rand.Intn(1<<24))
}

func hasCanonicalID(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	s, _ := v.(string)
	return strings.TrimSpace(s) != ""
}

func lookupAlias(raw map[string]any, aliases []string, isList bool) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if isList {
			s = FlattenList(v)
		} else {
			s = stringify(v)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		// JSON numbers decode as float64; keep integers undecorated.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func stringifyRow(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if listFields[k] {
			out[k] = FlattenList(v)
			continue
		}
		out[k] = stringify(v)
	}
	return out
}

func stripBHK(s string) string {
	s = strings.ReplaceAll(s, " BHK", "")
	return strings.TrimSpace(strings.ReplaceAll(s, "BHK", ""))
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
