package constants

import (
	"path/filepath"
	"strings"
)

// FileFormat is the declared kind of an uploaded document.
type FileFormat string

const (
	PDF  FileFormat = "PDF"
	DOCX FileFormat = "DOCX"
	TXT  FileFormat = "TXT"
	XLSX FileFormat = "XLSX"
	CSV  FileFormat = "CSV"
	JSON FileFormat = "JSON"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its FileFormat, or "" if unsupported.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "txt", "text":
		return TXT
	case "xlsx":
		return XLSX
	case "csv":
		return CSV
	case "json":
		return JSON
	default:
		return ""
	}
}

// DetectFormat maps a file path to its FileFormat by extension.
func DetectFormat(path string) FileFormat {
	return MapExtToFormat(filepath.Ext(path))
}

// IsExtractable reports whether the format flows through text extraction.
// Tabular and structured formats are display-only.
func IsExtractable(f FileFormat) bool {
	switch f {
	case PDF, DOCX, TXT:
		return true
	default:
		return false
	}
}

// IsPreviewOnly reports whether the format is handled by the display-only path.
func IsPreviewOnly(f FileFormat) bool {
	switch f {
	case XLSX, CSV, JSON:
		return true
	default:
		return false
	}
}
