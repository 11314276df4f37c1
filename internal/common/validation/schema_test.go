package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/pkg/catalog"
)

func validCatalogJSON() []byte {
	return []byte(`{
		"version": "1.0.0",
		"lastUpdated": "2024-09-01T00:00:00Z",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": 12,
				"participants": ["michael@mergington.edu", "daniel@mergington.edu"]
			}
		]
	}`)
}

func TestValidateCatalog_AcceptsValidDocument(t *testing.T) {
	assert.NoError(t, ValidateCatalog(validCatalogJSON()))
}

func TestValidateCatalog_AcceptsDefaultCatalog(t *testing.T) {
	data, err := json.Marshal(catalog.Default())
	require.NoError(t, err)

	assert.NoError(t, ValidateCatalog(data))
}

func TestValidateCatalog_RejectsNonJSON(t *testing.T) {
	err := ValidateCatalog([]byte("not a json document"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is not valid JSON")
}

func TestValidateCatalog_RejectsMissingVersion(t *testing.T) {
	err := ValidateCatalog([]byte(`{"activities": []}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestValidateCatalog_RejectsMissingActivityField(t *testing.T) {
	err := ValidateCatalog([]byte(`{
		"version": "1.0.0",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"max_participants": 12,
				"participants": []
			}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestValidateCatalog_RejectsWrongCapacityType(t *testing.T) {
	err := ValidateCatalog([]byte(`{
		"version": "1.0.0",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": "twelve",
				"participants": []
			}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestValidateCatalog_RejectsZeroCapacity(t *testing.T) {
	err := ValidateCatalog([]byte(`{
		"version": "1.0.0",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": 0,
				"participants": []
			}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestValidateCatalog_RejectsDuplicateParticipants(t *testing.T) {
	err := ValidateCatalog([]byte(`{
		"version": "1.0.0",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": 12,
				"participants": ["michael@mergington.edu", "michael@mergington.edu"]
			}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestValidateCatalog_RejectsUnknownActivityField(t *testing.T) {
	err := ValidateCatalog([]byte(`{
		"version": "1.0.0",
		"activities": [
			{
				"name": "Chess Club",
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": 12,
				"participants": [],
				"room": "B12"
			}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}
