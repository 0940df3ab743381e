package domain

import (
	"path/filepath"
	"strings"
)

// FileType identifies the declared format of an imported file.
// The set is closed; anything unrecognised maps to FileTypeUnknown.
type FileType string

const (
	// FileTypePDF is a PDF document.
	FileTypePDF FileType = "pdf"

	// FileTypeImage is a scanned image (PNG, JPEG, TIFF, ...).
	FileTypeImage FileType = "image"

	// FileTypeWord is an Office Open XML word-processing document.
	FileTypeWord FileType = "word"

	// FileTypeSpreadsheet is an Office Open XML spreadsheet.
	FileTypeSpreadsheet FileType = "spreadsheet"

	// FileTypePlainText is a plain text file.
	FileTypePlainText FileType = "text"

	// FileTypeEmail is an RFC 822 email message.
	FileTypeEmail FileType = "email"

	// FileTypeUnknown is any unrecognised format. It is decoded as text.
	FileTypeUnknown FileType = "unknown"
)

// Valid reports whether the file type is a member of the closed set.
func (t FileType) Valid() bool {
	switch t {
	case FileTypePDF, FileTypeImage, FileTypeWord, FileTypeSpreadsheet,
		FileTypePlainText, FileTypeEmail, FileTypeUnknown:
		return true
	}
	return false
}

// String returns the type name.
func (t FileType) String() string {
	return string(t)
}

// extensionTypes maps lowercase file extensions to file types.
var extensionTypes = map[string]FileType{
	".pdf":  FileTypePDF,
	".png":  FileTypeImage,
	".jpg":  FileTypeImage,
	".jpeg": FileTypeImage,
	".tif":  FileTypeImage,
	".tiff": FileTypeImage,
	".heic": FileTypeImage,
	".docx": FileTypeWord,
	".xlsx": FileTypeSpreadsheet,
	".txt":  FileTypePlainText,
	".md":   FileTypePlainText,
	".csv":  FileTypePlainText,
	".eml":  FileTypeEmail,
}

// FileTypeForPath infers a file type from a path's extension.
// Unrecognised extensions yield FileTypeUnknown.
func FileTypeForPath(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return FileTypeUnknown
}
