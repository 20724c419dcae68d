// Package match implements the lead/property matching heuristics: relaxed
// criteria scoring for property search and the tenant confidence score used
// to surface virtual leads. The matching is deliberately permissive (any one
// satisfied criterion qualifies a result): product policy favours recall
// over precision for lead surfacing. The two paths intentionally differ.
// Search uses substring amenity/locality matching while lead scoring uses
// exact tokens and bidirectional locality containment.
package match

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
)

// Query is one property-search request. Every field is optional; an absent
// field is "criterion does not apply", never a failed criterion.
type Query struct {
	City       string
	Locality   string // comma-separated, any may match
	Bedrooms   string
	BudgetMin  string
	BudgetMax  string
	Amenities  string // comma-separated, any may match
	OnlyActive bool   // restrict to status=="available"
}

// Tenant-score constants. Observed business thresholds; kept literal on
// purpose (no documented intent to re-derive them from).
const (
	scoreFloor     = 0.3
	scoreBase      = 0.5
	scoreIncrement = 0.1
	scoreCap       = 0.9

	budgetLowBand   = 0.8
	budgetHighBand  = 1.2
	budgetTolerance = 0.2
)

// SearchProperties filters and sorts properties against the query. A
// property is included when no criteria were supplied at all, or when at
// least one supplied criterion is satisfied. Results come back rent
// ascending, unparsable rents sorting first as 0.
func SearchProperties(props []domain.Property, q Query) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if q.OnlyActive && p.Status != domain.PropertyStatusAvailable {
			continue
		}
		score, total := searchScore(p, q)
		if total == 0 || score >= 1 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return parseAmount(out[i].Rent) < parseAmount(out[j].Rent)
	})
	return out
}

func searchScore(p domain.Property, q Query) (score, total int) {
	if q.City != "" {
		total++
		if strings.EqualFold(strings.TrimSpace(p.City), strings.TrimSpace(q.City)) {
			score++
		}
	}
	if q.Locality != "" {
		total++
		propLoc := strings.ToLower(p.Locality)
		for _, want := range splitList(q.Locality) {
			if strings.Contains(propLoc, want) {
				score++
				break
			}
		}
	}
	if q.Bedrooms != "" {
		total++
		// Raw comparison on purpose: "2" equals "2", never 2.
		if p.Bedrooms == q.Bedrooms {
			score++
		}
	}
	if q.BudgetMin != "" || q.BudgetMax != "" {
		total++
		rent := parseAmount(p.Rent)
		low := budgetLowBand * parseAmount(q.BudgetMin)
		high := math.Inf(1)
		if q.BudgetMax != "" {
			high = budgetHighBand * parseAmount(q.BudgetMax)
		}
		if rent >= low && rent <= high {
			score++
		}
	}
	if q.Amenities != "" {
		total++
		propAmenities := strings.ToLower(p.Amenities)
		for _, want := range splitList(q.Amenities) {
			if strings.Contains(propAmenities, want) {
				score++
				break
			}
		}
	}
	return score, total
}

// TenantScore is the outcome of scoring one tenant against the property
// pool: a confidence value in [0.3, 0.9], the count of matching properties
// and the first match in iteration order.
type TenantScore struct {
	Score     float64
	Matching  int
	BestMatch *domain.Property
}

// ScoreTenant treats the tenant as an implicit lead against every property.
// Each property contributes at most four checks (locality, budget,
// bedrooms, amenities), any one of which makes it a matching property.
func ScoreTenant(t domain.Tenant, props []domain.Property) TenantScore {
	result := TenantScore{Score: scoreFloor}
	for i := range props {
		if tenantMatchesProperty(t, props[i]) {
			result.Matching++
			if result.BestMatch == nil {
				result.BestMatch = &props[i]
			}
		}
	}
	if result.Matching > 0 {
		result.Score = math.Min(scoreCap, scoreBase+scoreIncrement*float64(result.Matching))
	}
	return result
}

func tenantMatchesProperty(t domain.Tenant, p domain.Property) bool {
	matches := 0

	// Locality: bidirectional containment, both sides non-empty.
	propLoc := strings.ToLower(strings.TrimSpace(p.Locality))
	if propLoc != "" {
		for _, loc := range splitList(t.Localities) {
			if strings.Contains(propLoc, loc) || strings.Contains(loc, propLoc) {
				matches++
				break
			}
		}
	}

	// Budget: needs both bounds and the rent to be parsable.
	if min, okMin := parseStrict(t.BudgetMin); okMin {
		if max, okMax := parseStrict(t.BudgetMax); okMax {
			if rent, okRent := parseStrict(p.Rent); okRent {
				tol := (max - min) * budgetTolerance
				if rent >= min-tol && rent <= max+tol {
					matches++
				}
			}
		}
	}

	if t.Bedrooms != "" && t.Bedrooms == p.Bedrooms {
		matches++
	}

	// Amenities: exact token equality here, not substring.
	wanted := splitList(t.Amenities)
	offered := splitList(p.Amenities)
outer:
	for _, w := range wanted {
		for _, o := range offered {
			if w == o {
				matches++
				break outer
			}
		}
	}

	return matches > 0
}

// splitList lower-cases and comma-splits a free-text list, dropping empties.
func splitList(s string) []string {
	parts := strings.Split(strings.ToLower(s), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseAmount reads a numeric stored as text; unparsable values count as 0.
func parseAmount(s string) float64 {
	v, _ := parseStrict(s)
	return v
}

func parseStrict(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
