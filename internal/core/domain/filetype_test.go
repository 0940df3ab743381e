package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want FileType
	}{
		{"report.pdf", FileTypePDF},
		{"/tmp/scan.PNG", FileTypeImage},
		{"photo.jpeg", FileTypeImage},
		{"contract.docx", FileTypeWord},
		{"budget.xlsx", FileTypeSpreadsheet},
		{"notes.txt", FileTypePlainText},
		{"README.md", FileTypePlainText},
		{"data.csv", FileTypePlainText},
		{"message.eml", FileTypeEmail},
		{"archive.tar.gz", FileTypeUnknown},
		{"noextension", FileTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FileTypeForPath(tt.path))
		})
	}
}

func TestFileType_Valid(t *testing.T) {
	for _, ft := range []FileType{
		FileTypePDF, FileTypeImage, FileTypeWord, FileTypeSpreadsheet,
		FileTypePlainText, FileTypeEmail, FileTypeUnknown,
	} {
		assert.True(t, ft.Valid(), "expected %q to be valid", ft)
	}
	assert.False(t, FileType("docm").Valid())
}
