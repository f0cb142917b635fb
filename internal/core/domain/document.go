package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PDFExtension is the only file extension the service accepts.
const PDFExtension = ".pdf"

// Document is a PDF held in the remote index.
// Name is unique across the index and acts as the key.
type Document struct {
	// Name is the file name the document was uploaded under.
	Name string `json:"name"`

	// Size is the stored file size in bytes.
	Size int64 `json:"size"`
}

// File is a local file selected for upload.
type File struct {
	// Name is the base name sent to the service.
	Name string

	// Path is the location on disk.
	Path string

	// Size is the file size in bytes, zero when unknown.
	Size int64
}

// IsPDF reports whether name ends in the PDF extension.
// The check is case-sensitive: "REPORT.PDF" is rejected.
func IsPDF(name string) bool {
	return strings.HasSuffix(name, PDFExtension)
}

// FileFromPath builds a File for the file at path.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s: %w", path, ErrInvalidInput)
	}
	return File{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}, nil
}

// FormatSize renders a byte count for display.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
