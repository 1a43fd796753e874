package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidateProfile(t *testing.T) {
	t.Run("minimal object conforms", func(t *testing.T) {
		assert.NoError(t, ValidateCandidateProfile(`{}`))
	})

	t.Run("full profile conforms", func(t *testing.T) {
		doc := `{
			"name": "Jane Roe",
			"email": "jane@example.com",
			"linkedinUrl": "https://linkedin.com/in/janeroe",
			"experience": [{
				"jobTitle": "Engineer",
				"company": "Acme",
				"duration": "Jan 2020 - Present",
				"startDate": "2020-01",
				"endDate": "Present",
				"technologies": ["Go"]
			}],
			"education": [{"degree": "BS", "institution": "State", "year": "2016"}],
			"skills": ["Go", "Postgres"]
		}`
		assert.NoError(t, ValidateCandidateProfile(doc))
	})

	t.Run("empty date strings conform", func(t *testing.T) {
		doc := `{"experience": [{"jobTitle": "Engineer", "startDate": "", "endDate": ""}]}`
		assert.NoError(t, ValidateCandidateProfile(doc))
	})

	t.Run("name must be a string", func(t *testing.T) {
		err := ValidateCandidateProfile(`{"name": 42}`)
		require.Error(t, err)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.NotEmpty(t, validationErr.Errors)
		assert.Equal(t, "name", validationErr.Errors[0].Field)
	})

	t.Run("skills must be an array", func(t *testing.T) {
		err := ValidateCandidateProfile(`{"skills": "Go, Postgres"}`)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("invented month is rejected", func(t *testing.T) {
		err := ValidateCandidateProfile(`{"experience": [{"startDate": "2023-13"}]}`)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("free-text date is rejected in normalized fields", func(t *testing.T) {
		err := ValidateCandidateProfile(`{"experience": [{"endDate": "next year"}]}`)
		assert.Error(t, err)
	})

	t.Run("invalid json surfaces as a load error", func(t *testing.T) {
		err := ValidateCandidateProfile(`{"name": "Jan`)
		require.Error(t, err)

		var loadErr *SchemaLoadError
		require.ErrorAs(t, err, &loadErr)
	})
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "Invalid type. Expected: string, given: integer"},
		{Field: "skills", Message: "Invalid type. Expected: array, given: string"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. name:")
	assert.Contains(t, msg, "2. skills:")
}
