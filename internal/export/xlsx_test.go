package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
	"codeberg.org/snonux/poplingo/internal/testutil"
)

func sampleEntries() []notebook.WordEntry {
	var gen testutil.TestDataGenerator
	a := gen.GenerateEntry("a", "manzana")
	a.ImageURL = image.DataURI("image/png", gen.GenerateImageData())
	b := gen.GenerateEntry("b", "gato")
	b.ImageURL = "https://example.com/cat.png"
	b.TargetLang = language.Italian
	return []notebook.WordEntry{a, b}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.xlsx")
	require.NoError(t, WriteXLSX(path, sampleEntries()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "manzana", rows[1][1])
	assert.Equal(t, "Uso manzana. | I use manzana.", rows[1][5])
	assert.Equal(t, "Spanish", rows[1][6])
	assert.Equal(t, "2023-11-14T22:13:20.000Z", rows[1][8])
	assert.Equal(t, "(inline)", rows[1][9])
	assert.Equal(t, "https://example.com/cat.png", rows[2][9])
	assert.Equal(t, "Italian", rows[2][6])
}

func TestWriteXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestImportXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.xlsx")
	entries := sampleEntries()
	require.NoError(t, WriteXLSX(path, entries))

	store := notebook.Open(notebook.NewMemorySlot(nil), nil)
	require.NoError(t, store.Add(entries[1]))

	result, err := ImportXLSX(path, store)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, entries[0].Term, got.Term)
	assert.Equal(t, entries[0].Definition, got.Definition)
	assert.Equal(t, entries[0].Examples, got.Examples)
	assert.Equal(t, entries[0].CreatedAt, got.CreatedAt)
	assert.Equal(t, language.Spanish, got.TargetLang)
	assert.Empty(t, got.ImageURL, "inline images are not exported")
}

func TestImportXLSX_BadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow(SheetName, "A1", &header))
	require.NoError(t, f.SetSheetRow(SheetName, "A2", &[]interface{}{"", "no id"}))
	require.NoError(t, f.SetSheetRow(SheetName, "A3", &[]interface{}{"x", "hola", "", "", "", "", "Klingon", "English"}))
	require.NoError(t, f.SetSheetRow(SheetName, "A4", &[]interface{}{"y", "hola", "", "", "", "", "es", "en"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := notebook.Open(notebook.NewMemorySlot(nil), nil)
	result, err := ImportXLSX(path, store)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 2)

	got, ok := store.Get("y")
	require.True(t, ok)
	assert.Equal(t, language.Spanish, got.TargetLang)
	assert.Equal(t, []notebook.Example{}, got.Examples)
}

func TestImportXLSX_MissingFile(t *testing.T) {
	store := notebook.Open(notebook.NewMemorySlot(nil), nil)
	_, err := ImportXLSX("/nonexistent/notebook.xlsx", store)
	assert.Error(t, err)
}
