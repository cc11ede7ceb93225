// Package loader reads source documents as plain text.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// FileType constants
const (
	FileTypePDF = "pdf"
	FileTypeMD  = "md"
	FileTypeTXT = "txt"
)

// DetectFileType detects file type from filename
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FileTypePDF
	case ".md", ".markdown":
		return FileTypeMD
	case ".txt":
		return FileTypeTXT
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// IsSupported checks if file type is supported for upload
func IsSupported(fileType string) bool {
	switch fileType {
	case FileTypePDF, FileTypeMD, FileTypeTXT:
		return true
	}
	return false
}

// Load reads the file at path and returns its text content. PDFs go through
// text extraction; everything else is decoded best-effort as UTF-8 with
// invalid bytes replaced, so one odd byte never fails a whole file.
func Load(path string) (string, error) {
	if DetectFileType(path) == FileTypePDF {
		return loadPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func loadPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf %s: %w", path, err)
	}
	text, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("extract pdf %s: %w", path, err)
	}
	return string(text), nil
}
