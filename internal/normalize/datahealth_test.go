package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataHealth_FullCoverage(t *testing.T) {
	rows := []map[string]string{
		{"Customer Name": "A", "Mobile": "123", "Email Address": "a@b.c"},
		{"Customer Name": "B", "Mobile": "456", "Email Address": "d@e.f"},
	}

	report := DataHealth(rows)

	assert.Equal(t, 2, report.TotalRows)
	assert.True(t, report.HasName)
	assert.True(t, report.HasPhone)
	assert.True(t, report.HasEmail)
	assert.Equal(t, 100, report.CompletenessScore)
}

func TestDataHealth_NoCoverage(t *testing.T) {
	report := DataHealth([]map[string]string{{"id": "1", "value": "x"}})
	assert.False(t, report.HasName)
	assert.False(t, report.HasPhone)
	assert.False(t, report.HasEmail)
	assert.Equal(t, 0, report.CompletenessScore)
}

func TestDataHealth_PartialCoverageRounds(t *testing.T) {
	report := DataHealth([]map[string]string{{"phone_number": "1"}})
	assert.True(t, report.HasPhone)
	assert.Equal(t, 33, report.CompletenessScore)

	report = DataHealth([]map[string]string{{"client": "x", "contact": "y"}})
	assert.Equal(t, 67, report.CompletenessScore)
}

func TestDataHealth_EmptyRows(t *testing.T) {
	report := DataHealth(nil)
	assert.Equal(t, 0, report.TotalRows)
	assert.Equal(t, 0, report.CompletenessScore)
}
