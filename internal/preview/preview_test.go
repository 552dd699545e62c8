package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
)

func TestPreviewCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Capex\nSolar Farm,5000000\nWind Park,3000000\n"), 0o644))

	doc, err := NewService(nil).Preview(path)
	require.NoError(t, err)
	assert.Equal(t, constants.CSV, doc.Format)
	require.NotNil(t, doc.Table)
	assert.Equal(t, []string{"Name", "Capex"}, doc.Table.Headers)
	require.Len(t, doc.Table.Rows, 2)
	assert.Equal(t, []string{"Solar Farm", "5000000"}, doc.Table.Rows[0])
}

func TestPreviewJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Solar Farm","capex":5000000}`), 0o644))

	doc, err := NewService(nil).Preview(path)
	require.NoError(t, err)
	assert.Equal(t, constants.JSON, doc.Format)
	assert.Contains(t, doc.JSON, `"name": "Solar Farm"`)
}

func TestPreviewJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewService(nil).Preview(path)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindExtraction))
}

func TestPreviewXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Project", "NPV"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"Hydro Plant", "1200000"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	doc, err := NewService(nil).Preview(path)
	require.NoError(t, err)
	assert.Equal(t, constants.XLSX, doc.Format)
	require.NotNil(t, doc.Table)
	assert.Equal(t, []string{"Project", "NPV"}, doc.Table.Headers)
	require.Len(t, doc.Table.Rows, 1)
	assert.Equal(t, []string{"Hydro Plant", "1200000"}, doc.Table.Rows[0])
}

func TestPreviewRejectsExtractableFormats(t *testing.T) {
	for _, name := range []string{"report.pdf", "proposal.docx", "notes.txt"} {
		_, err := NewService(nil).Preview(name)
		require.Error(t, err, name)
		assert.True(t, common.IsKind(err, common.KindExtraction), name)
	}
}

func TestPreviewEmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	doc, err := NewService(nil).Preview(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Table.Headers)
	assert.Empty(t, doc.Table.Rows)
}
