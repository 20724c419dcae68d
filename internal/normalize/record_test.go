package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantRow_PassThroughWhenCanonical(t *testing.T) {
	raw := map[string]any{
		"tenant_id":  "TEN-1700000000000-abc123",
		"name":       "Ravi",
		"budget_max": "18000",
	}

	out := TenantRow(raw)

	// Already-canonical rows keep their id and fields untouched.
	assert.Equal(t, "TEN-1700000000000-abc123", out["tenant_id"])
	assert.Equal(t, "Ravi", out["name"])
	assert.Equal(t, "18000", out["budget_max"])
	_, hasSynth := out["whatsapp_number"]
	assert.False(t, hasSynth, "pass-through must not re-derive fields")
}

func TestTenantRow_LegacyColumns(t *testing.T) {
	raw := map[string]any{
		"Customer Name": "Priya",
		"Mobile":        "07095288950",
		"Location":      "Hyderabad",
		"Budget":        "15000-20000",
		"BHKtype":       "2 BHK",
		"Amenities":     []any{"gym", "parking"},
	}

	out := TenantRow(raw)

	require.NotEmpty(t, out["tenant_id"])
	assert.Equal(t, "Priya", out["name"])
	assert.Equal(t, "07095288950", out["phone"])
	assert.Equal(t, "07095288950", out["whatsapp_number"], "whatsapp defaults to phone")
	assert.Equal(t, "Hyderabad", out["city"])
	assert.Equal(t, "15000", out["budget_min"])
	assert.Equal(t, "20000", out["budget_max"])
	assert.Equal(t, "2", out["bedrooms"])
	assert.Equal(t, "gym, parking", out["amenities"])
}

func TestTenantRow_UnknownFieldsDefaultEmpty(t *testing.T) {
	out := TenantRow(map[string]any{"Something Else": "x"})
	for _, field := range tenantFields {
		v, ok := out[field]
		require.True(t, ok, "field %q missing", field)
		if field == "whatsapp_number" {
			continue // mirrors phone, which is also empty here
		}
		assert.Empty(t, v, "field %q", field)
	}
}

func TestPropertyRow_LegacyColumns(t *testing.T) {
	raw := map[string]any{
		"Location": "Hyderabad",
		"Area":     "Gachibowli",
		"Price":    "20000",
		"BHK":      "3BHK",
		"Owner":    "Suresh",
	}

	out := PropertyRow(raw)

	require.NotEmpty(t, out["property_id"])
	assert.Equal(t, "Hyderabad", out["city"])
	assert.Equal(t, "Gachibowli", out["locality"])
	assert.Equal(t, "20000", out["rent"])
	assert.Equal(t, "3", out["bedrooms"])
	assert.Equal(t, "Suresh", out["owner_name"])
}

func TestPropertyRow_PassThroughOnPropertyCode(t *testing.T) {
	raw := map[string]any{"property_code": "HM-042", "rent": "12000"}
	out := PropertyRow(raw)
	assert.Equal(t, "HM-042", out["property_code"])
	assert.Equal(t, "12000", out["rent"])
	_, synthesized := out["property_id"]
	assert.False(t, synthesized)
}

func TestSplitBudget(t *testing.T) {
	cases := []struct {
		in       string
		min, max string
	}{
		{"15000-20000", "15000", "20000"},
		{"15000 - 20000", "15000", "20000"},
		{"18000", "", "18000"},
		{"", "", ""},
	}
	for _, tc := range cases {
		min, max := SplitBudget(tc.in)
		assert.Equal(t, tc.min, min, "min for %q", tc.in)
		assert.Equal(t, tc.max, max, "max for %q", tc.in)
	}
}

func TestFlattenList(t *testing.T) {
	assert.Equal(t, "gym, parking", FlattenList([]any{"gym", "parking"}))
	assert.Equal(t, "gym, parking", FlattenList("gym, parking"))
	assert.Equal(t, "", FlattenList(42), "non-list non-string degrades to empty")
	assert.Equal(t, "", FlattenList(nil))
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewID("TEN")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
