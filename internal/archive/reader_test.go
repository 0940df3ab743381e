package archive

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipEntry describes a test archive entry.
type zipEntry struct {
	name    string
	content []byte
	method  uint16
}

// buildZip assembles a minimal ZIP buffer from local file records, followed
// by a central directory signature so scanners have a stop marker.
func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	for _, e := range entries {
		payload := e.content
		if e.method == methodDeflate {
			var compressed bytes.Buffer
			fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
			require.NoError(t, err)
			_, err = fw.Write(e.content)
			require.NoError(t, err)
			require.NoError(t, fw.Close())
			payload = compressed.Bytes()
		}

		header := make([]byte, localHeaderLen)
		binary.LittleEndian.PutUint32(header[0:], localHeaderSig)
		binary.LittleEndian.PutUint16(header[4:], 20) // version needed
		binary.LittleEndian.PutUint16(header[8:], e.method)
		binary.LittleEndian.PutUint32(header[14:], crc32.ChecksumIEEE(e.content))
		binary.LittleEndian.PutUint32(header[18:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(header[22:], uint32(len(e.content)))
		binary.LittleEndian.PutUint16(header[26:], uint16(len(e.name)))

		buf.Write(header)
		buf.WriteString(e.name)
		buf.Write(payload)
	}

	// Central directory signature, enough to terminate the walk.
	buf.Write([]byte{'P', 'K', 0x01, 0x02})
	return buf.Bytes()
}

func TestExtract_StoredEntry(t *testing.T) {
	content := []byte("hello stored world")
	data := buildZip(t, []zipEntry{{name: "word/document.xml", content: content, method: methodStore}})

	got, ok := Extract("word/document.xml", data)
	require.True(t, ok)
	assert.Equal(t, content, got)
}

func TestExtract_DeflatedEntry(t *testing.T) {
	content := bytes.Repeat([]byte("compressible text payload "), 50)
	data := buildZip(t, []zipEntry{{name: "xl/sharedStrings.xml", content: content, method: methodDeflate}})

	got, ok := Extract("xl/sharedStrings.xml", data)
	require.True(t, ok)
	assert.Equal(t, content, got)
}

func TestExtract_SecondEntry(t *testing.T) {
	data := buildZip(t, []zipEntry{
		{name: "a.xml", content: []byte("first"), method: methodStore},
		{name: "b.xml", content: []byte("second"), method: methodDeflate},
	})

	got, ok := Extract("b.xml", data)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)
}

func TestExtract_MissingEntry(t *testing.T) {
	data := buildZip(t, []zipEntry{{name: "a.xml", content: []byte("x"), method: methodStore}})

	got, ok := Extract("nope.xml", data)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestExtract_UnsupportedMethod(t *testing.T) {
	// Method 12 (bzip2) is not supported; the entry is reported absent.
	data := buildZip(t, []zipEntry{{name: "a.xml", content: []byte("x"), method: 12}})

	_, ok := Extract("a.xml", data)
	assert.False(t, ok)
}

func TestExtract_MalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":             {},
		"garbage":           []byte("this is not a zip archive at all"),
		"truncated header":  {'P', 'K', 0x03, 0x04, 0x14, 0x00},
		"short payload":     buildZip(t, []zipEntry{{name: "a.xml", content: []byte("full content"), method: methodStore}})[:40],
		"only central dir":  {'P', 'K', 0x01, 0x02, 0, 0, 0, 0},
		"signature mangled": {'P', 'K', 0x05, 0x06, 0, 0, 0, 0},
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := Extract("a.xml", data)
				assert.False(t, ok)
			})
		})
	}
}

func TestExtract_CorruptDeflateStream(t *testing.T) {
	header := make([]byte, localHeaderLen)
	binary.LittleEndian.PutUint32(header[0:], localHeaderSig)
	binary.LittleEndian.PutUint16(header[8:], methodDeflate)
	binary.LittleEndian.PutUint32(header[18:], 8)  // compressed size
	binary.LittleEndian.PutUint32(header[22:], 64) // claimed uncompressed size
	binary.LittleEndian.PutUint16(header[26:], 5)

	data := append(header, []byte("a.xml")...)
	data = append(data, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)

	_, ok := Extract("a.xml", data)
	assert.False(t, ok)
}
