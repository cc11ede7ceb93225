package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", FileTypeTXT},
		{"README.md", FileTypeMD},
		{"guide.markdown", FileTypeMD},
		{"paper.PDF", FileTypePDF},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFileType(tt.filename), tt.filename)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(FileTypeTXT))
	assert.True(t, IsSupported(FileTypeMD))
	assert.True(t, IsSupported(FileTypePDF))
	assert.False(t, IsSupported("html"))
	assert.False(t, IsSupported("exe"))
}

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestLoadReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.txt")
	require.NoError(t, os.WriteFile(path, []byte{'o', 'k', 0xff, 0xfe, '!'}, 0644))

	// ToValidUTF8 collapses each run of invalid bytes into one replacement.
	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ok�!", text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadMalformedPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
