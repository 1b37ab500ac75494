package changelog

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

func renderedSummary(t *testing.T, c *clifdict.Changelog) string {
	t.Helper()
	var buf bytes.Buffer
	NewPlainRenderer(&buf).Render(c)
	return buf.String()
}

func TestRender_EmptyChangelog(t *testing.T) {
	c, err := fixedDiffer().Diff(dictV("2.0"), dictV("2.0"))
	require.NoError(t, err)

	out := renderedSummary(t, c)
	assert.Contains(t, out, "Changelog 2.0 -> 2.0")
	assert.Contains(t, out, "No changes detected between versions.")
}

func TestRender_ListsChangedTables(t *testing.T) {
	oldDict := dictV("2.0",
		clifdict.Table{Name: "ecmo_mcs", Status: clifdict.StatusConcept},
		clifdict.Table{Name: "provider", Status: clifdict.StatusConcept},
	)
	newDict := dictV("2.1",
		clifdict.Table{Name: "ecmo_mcs", Status: clifdict.StatusBeta, Variables: []clifdict.Variable{
			{Name: "sweep_speed", Type: clifdict.KindNumeric},
		}},
		clifdict.Table{Name: "vitals", Status: clifdict.StatusBeta},
	)

	c, err := fixedDiffer().Diff(oldDict, newDict)
	require.NoError(t, err)

	out := renderedSummary(t, c)
	assert.Contains(t, out, "Tables added (1): vitals")
	assert.Contains(t, out, "Tables removed (1): provider")
	assert.Contains(t, out, "Status concept to beta (1): ecmo_mcs")
	assert.Contains(t, out, "concept -> beta")
	assert.Contains(t, out, "+1 variables")
	// vitals added, provider removed, ecmo_mcs status + one variable.
	assert.Contains(t, out, "Total changes: 4")
}

func TestRender_TimestampFormatted(t *testing.T) {
	c := &clifdict.Changelog{
		Metadata: clifdict.ChangelogMetadata{
			GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			OldVersion:  "2.0",
			NewVersion:  "2.1",
		},
	}

	out := renderedSummary(t, c)
	assert.Contains(t, out, "generated 2026-08-30 12:00:00 UTC")
}
