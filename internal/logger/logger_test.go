package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebugOnlyInVerbose(t *testing.T) {
	buf := capture(t)

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] shown 2")
}

func TestWarnAlwaysPrints(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Warn("ocr failed on page %d", 3)
	assert.Contains(t, buf.String(), "[WARN] ocr failed on page 3")
}

func TestSection(t *testing.T) {
	buf := capture(t)

	SetVerbose(true)
	Section("Import")
	assert.Contains(t, buf.String(), "=== Import ===")
}
