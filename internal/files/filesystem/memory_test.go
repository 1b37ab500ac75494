package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("mcide/vitals/vital_category.csv", "vital_category,description\ntemp_c,Temperature\n")

	content, err := mfs.ReadFile("mcide/vitals/vital_category.csv")
	require.NoError(t, err)
	assert.Contains(t, string(content), "temp_c")

	// Absolute path resolves to the same file
	content, err = mfs.ReadFile("/project/mcide/vitals/vital_category.csv")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Temperature")
}

func TestMemoryFileSystem_ReadFile_NotFound(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")

	_, err := mfs.ReadFile("missing.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir_SortedEntries(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("mcide/vitals/vital_category.csv", "a")
	mfs.AddFile("mcide/labs/lab_category.csv", "b")
	mfs.AddFile("mcide/labs/lab_order_category.csv", "c")

	entries, err := mfs.ReadDir("mcide")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "labs", entries[0].Name())
	assert.Equal(t, "vitals", entries[1].Name())
	assert.True(t, entries[0].IsDir())

	files, err := mfs.ReadDir("mcide/labs")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "lab_category.csv", files[0].Name())
	assert.False(t, files[0].IsDir())
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("schema.sql", "CREATE TABLE patient ();")

	info, err := mfs.Stat("schema.sql")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(24), info.Size())

	dir, err := mfs.Stat("/project")
	require.NoError(t, err)
	assert.True(t, dir.IsDir())

	_, err = mfs.Stat("nope")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
