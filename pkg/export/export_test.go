package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Dataset {
	return Dataset{
		Title:   "Students",
		Headers: []string{"ID", "Name", "GPA"},
		Rows: [][]string{
			{"1", "Jane Doe", "3.75"},
			{"2", "John Roe", "2.50"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sample(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,GPA\n1,Jane Doe,3.75\n2,John Roe,2.50\n", string(out))
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	_, err := Render(Dataset{}, FormatCSV)
	assert.Error(t, err)
}

func TestRenderCSVPadsShortRows(t *testing.T) {
	data := sample()
	data.Rows = append(data.Rows, []string{"3"})
	out, err := Render(data, FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(out), "3,,\n")
}

func TestRenderPDFProducesDocument(t *testing.T) {
	out, err := Render(sample(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sample(), Format("xlsx"))
	assert.Error(t, err)
}
