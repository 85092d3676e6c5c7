package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineWriter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "line_writer_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filePath := filepath.Join(tmpDir, "out.txt")

	writer, err := NewLineWriter(FileWriterConfig{FilePath: filePath})
	require.NoError(t, err)
	assert.NotNil(t, writer)
	assert.Equal(t, filePath, writer.Path())

	// Verify file was created
	assert.FileExists(t, filePath)

	err = writer.Close()
	assert.NoError(t, err)
}

func TestNewLineWriter_DirectoryCreation(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "line_writer_dir_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	nestedDir := filepath.Join(tmpDir, "nested", "deep", "path")
	filePath := filepath.Join(nestedDir, "out.txt")

	writer, err := NewLineWriter(FileWriterConfig{FilePath: filePath})
	require.NoError(t, err)

	// Verify directory was created
	assert.DirExists(t, nestedDir)

	assert.NoError(t, writer.Close())
}

func TestNewLineWriter_InvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	writer, err := NewLineWriter(FileWriterConfig{FilePath: filepath.Join(blocker, "out.txt")})
	assert.Error(t, err)
	assert.Nil(t, writer)
}

func TestLineWriter_WriteLines(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.txt")

	writer, err := NewLineWriter(FileWriterConfig{FilePath: filePath, BufferSize: 8})
	require.NoError(t, err)

	require.NoError(t, writer.WriteString("Ada"))
	require.NoError(t, writer.WriteLine([]byte("Lin")))
	require.NoError(t, writer.WriteString(""))
	assert.Equal(t, 3, writer.Lines())
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "Ada\nLin\n\n", string(data))
}

func TestLineWriter_Truncates(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("old contents that are longer\n"), 0600))

	writer, err := NewLineWriter(FileWriterConfig{FilePath: filePath})
	require.NoError(t, err)
	require.NoError(t, writer.WriteString("new"))
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}
