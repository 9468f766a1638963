package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderWritesHeaderAndRows(t *testing.T) {
	data := NewDataset("Roster", "ID", "Name")
	data.Append("STU001", "Asha")
	data.Append("STU002")

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name", strings.TrimSpace(lines[0]))
	assert.Equal(t, "STU001,Asha", strings.TrimSpace(lines[1]))
	assert.Equal(t, "STU002,", strings.TrimSpace(lines[2]))
}

func TestAppendTruncatesExtraValues(t *testing.T) {
	data := NewDataset("Roster", "ID")
	data.Append("STU001", "ignored")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"STU001"}, data.Rows[0])
}

func TestCSVRenderRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(&Dataset{})
	assert.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	data := NewDataset("Fee Ledger", "Month", "Amount")
	data.Append("2026-03", "1200.00")

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
