package clifdict

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary() *Dictionary {
	return &Dictionary{
		Version: "2.1",
		Tables: []Table{
			{
				Name:   "vitals",
				Status: StatusBeta,
				Variables: []Variable{
					{Name: "recorded_dttm", Type: KindDatetime, Description: "Recording time"},
					{
						Name:        "vital_category",
						Type:        KindCategorical,
						Description: "Vital sign category",
						Values:      []string{"temp_c", "heart_rate"},
						Examples:    []string{"Temp", "HR"},
					},
				},
			},
			{
				Name:   "adt",
				Status: StatusConcept,
				Variables: []Variable{
					{Name: "location_name", Type: KindString, Description: "Ward name"},
				},
			},
		},
	}
}

func TestEncodeDictionary_PreservesDeclarationOrder(t *testing.T) {
	// "vitals" sorts after "adt"; declaration order must win anyway.
	data, err := EncodeDictionary(testDictionary())
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, "vitals:"), strings.Index(text, "adt:"))
	assert.Less(t, strings.Index(text, "recorded_dttm"), strings.Index(text, "vital_category"))
	assert.True(t, strings.HasPrefix(text, "version:"), "version leads the document")
}

func TestDictionary_RoundTrip(t *testing.T) {
	original := testDictionary()
	data, err := EncodeDictionary(original)
	require.NoError(t, err)

	decoded, err := DecodeDictionary(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeDictionary_Deterministic(t *testing.T) {
	first, err := EncodeDictionary(testDictionary())
	require.NoError(t, err)
	second, err := EncodeDictionary(testDictionary())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeDictionary_DefaultsMissingStatusToConcept(t *testing.T) {
	d, err := DecodeDictionary([]byte(`version: "2.0"
tables:
  labs:
    variables:
      - name: lab_value
        type: numeric
        description: Lab result value
`))
	require.NoError(t, err)
	require.Len(t, d.Tables, 1)
	assert.Equal(t, StatusConcept, d.Tables[0].Status)
}

func TestDecodeDictionary_RejectsDuplicateTables(t *testing.T) {
	_, err := DecodeDictionary([]byte(`version: "2.0"
tables:
  labs:
    status: concept
  labs:
    status: beta
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDictionary)
}

func TestDecodeDictionary_RejectsNonMapping(t *testing.T) {
	_, err := DecodeDictionary([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDictionary)
}

func TestChangelog_RoundTrip(t *testing.T) {
	c := &Changelog{
		Metadata: ChangelogMetadata{
			ID:          "0f0e8c4e-2b6b-4f1b-9f6e-0c7f9f3f2a11",
			GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			OldVersion:  "2.0",
			NewVersion:  "2.1",
		},
		Summary: ChangelogSummary{
			TablesAdded:         []string{},
			TablesRemoved:       []string{},
			TablesModified:      []string{"ecmo_mcs"},
			TablesStatusChanged: []string{"ecmo_mcs"},
			StatusChanges: map[string]*StatusTransition{
				TransitionKey(StatusConcept, StatusBeta): {Count: 1, Tables: []string{"ecmo_mcs"}},
			},
			TotalChanges: 2,
		},
		Changes: map[string]*TableChange{
			"ecmo_mcs": {
				ChangeTypes:    []ChangeType{ChangeTableStatusChanged, ChangeTableModified},
				OldStatus:      StatusConcept,
				NewStatus:      StatusBeta,
				VariablesAdded: []Variable{{Name: "sweep_speed", Type: KindNumeric}},
			},
		},
	}

	data, err := EncodeChangelog(c)
	require.NoError(t, err)

	decoded, err := DecodeChangelog(data)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}
