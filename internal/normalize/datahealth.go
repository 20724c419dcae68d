package normalize

import (
	"math"
	"strings"
)

// HealthReport is the coarse completeness signal returned after a dataset
// upload. It is a heading-level heuristic: only the column names of the
// first row are inspected, never cell values.
type HealthReport struct {
	TotalRows         int  `json:"total_rows"`
	HasName           bool `json:"has_name"`
	HasPhone          bool `json:"has_phone"`
	HasEmail          bool `json:"has_email"`
	CompletenessScore int  `json:"completeness_score"`
}

var (
	nameHints  = []string{"name", "customer", "client"}
	phoneHints = []string{"phone", "mobile", "contact"}
	emailHints = []string{"email", "mail"}
)

// DataHealth scores an uploaded dataset's column coverage. An empty row set
// yields all flags false and score 0.
func DataHealth(rows []map[string]string) HealthReport {
	report := HealthReport{TotalRows: len(rows)}
	if len(rows) == 0 {
		return report
	}

	for col := range rows[0] {
		lower := strings.ToLower(col)
		if containsAny(lower, nameHints) {
			report.HasName = true
		}
		if containsAny(lower, phoneHints) {
			report.HasPhone = true
		}
		if containsAny(lower, emailHints) {
			report.HasEmail = true
		}
	}

	flags := 0
	for _, set := range []bool{report.HasName, report.HasPhone, report.HasEmail} {
		if set {
			flags++
		}
	}
	report.CompletenessScore = int(math.Round(float64(flags) / 3 * 100))
	return report
}

func containsAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}
