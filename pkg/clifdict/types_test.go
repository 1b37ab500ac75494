package clifdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("beta")
	assert.True(t, ok)
	assert.Equal(t, StatusBeta, s)

	s, ok = ParseStatus("deprecated")
	assert.False(t, ok)
	assert.Equal(t, StatusConcept, s, "unrecognized text falls back to concept")
}

func TestVariable_CloneIsDeep(t *testing.T) {
	original := Variable{
		Name:   "vital_category",
		Type:   KindCategorical,
		Values: []string{"temp_c"},
		Groups: map[string]string{"temp_c": "temperature"},
	}

	clone := original.Clone()
	clone.Values[0] = "changed"
	clone.Groups["temp_c"] = "changed"

	assert.Equal(t, "temp_c", original.Values[0])
	assert.Equal(t, "temperature", original.Groups["temp_c"])
}

func TestTableChange_Has(t *testing.T) {
	c := &TableChange{ChangeTypes: []ChangeType{ChangeTableStatusChanged, ChangeTableModified}}
	assert.True(t, c.Has(ChangeTableModified))
	assert.False(t, c.Has(ChangeTableAdded))
}

func TestTransitionKey(t *testing.T) {
	assert.Equal(t, "concept_to_beta", TransitionKey(StatusConcept, StatusBeta))
}

func TestWarning_String(t *testing.T) {
	w := Warning{
		Kind:    WarnEmptyCategorical,
		Table:   "labs",
		Column:  "lab_category",
		Line:    14,
		Message: "categorical column lab_category has no vocabulary entries",
	}
	assert.Equal(t,
		"empty_categorical [labs.lab_category] (line 14): categorical column lab_category has no vocabulary entries",
		w.String())

	bare := Warning{Kind: WarnMalformedStatement, Message: "statement skipped"}
	assert.Equal(t, "malformed_statement: statement skipped", bare.String())
}
