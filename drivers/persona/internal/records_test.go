package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecord(t *testing.T) {
	resource := Resource{
		ID:   "inq_123",
		Type: "inquiry",
		Attributes: map[string]any{
			"status":       "completed",
			"created-at":   "2025-01-01T00:00:00Z",
			"updated-at":   "2025-01-03T00:00:00Z",
			"name-first":   "Jane",
			"reference-id": nil,
		},
		Relationships: map[string]any{
			"account": map[string]any{"data": map[string]any{"id": "act_1"}},
		},
	}

	record := normalizeRecord(resource)

	assert.Equal(t, "inq_123", record["id"])
	assert.Equal(t, "inquiry", record["type"])
	assert.Equal(t, "completed", record["status"])
	assert.Equal(t, "2025-01-03T00:00:00Z", record["updated_at"])
	assert.Equal(t, "Jane", record["name_first"])
	assert.Contains(t, record, "reference_id")
	assert.NotContains(t, record, "updated-at", "hyphenated names must be rewritten")
	assert.Contains(t, record, "relationships")
}

func TestNormalizeRecordWithoutRelationships(t *testing.T) {
	record := normalizeRecord(Resource{ID: "case_1", Type: "case"})

	assert.Equal(t, "case_1", record["id"])
	assert.NotContains(t, record, "relationships")
}

func TestNormalizeFieldName(t *testing.T) {
	assert.Equal(t, "updated_at", normalizeFieldName("updated-at"))
	assert.Equal(t, "inquiry_template_version_id", normalizeFieldName("inquiry-template-version-id"))
	assert.Equal(t, "status", normalizeFieldName("status"))
}
