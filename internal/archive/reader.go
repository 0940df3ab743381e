// Package archive extracts entries from ZIP-formatted buffers by walking
// local file headers. Office Open XML containers are read this way without
// consulting the central directory, so truncated or oddly assembled files
// still yield their payloads when the local records are intact.
package archive

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"
)

// Compression methods from the ZIP specification.
const (
	methodStore   = 0
	methodDeflate = 8
)

// localHeaderLen is the fixed-size portion of a local file header.
const localHeaderLen = 30

// localHeaderSig is "PK\x03\x04" little-endian.
const localHeaderSig = 0x04034b50

// Extract scans the archive for the named entry and returns its
// decompressed payload. The second result is false when the entry is
// absent or the archive is malformed; malformed input never panics and
// never produces a partial payload.
//
// Multi-disk archives and encrypted entries are not supported.
func Extract(entryName string, data []byte) ([]byte, bool) {
	offset := 0
	for {
		if offset+localHeaderLen > len(data) {
			return nil, false
		}
		if binary.LittleEndian.Uint32(data[offset:]) != localHeaderSig {
			// First non-local record: central directory or garbage.
			return nil, false
		}

		method := binary.LittleEndian.Uint16(data[offset+8:])
		compressedSize := int(binary.LittleEndian.Uint32(data[offset+18:]))
		uncompressedSize := int(binary.LittleEndian.Uint32(data[offset+22:]))
		nameLen := int(binary.LittleEndian.Uint16(data[offset+26:]))
		extraLen := int(binary.LittleEndian.Uint16(data[offset+28:]))

		nameStart := offset + localHeaderLen
		payloadStart := nameStart + nameLen + extraLen
		payloadEnd := payloadStart + compressedSize
		if nameStart+nameLen > len(data) || payloadEnd > len(data) || payloadEnd < payloadStart {
			return nil, false
		}

		name := string(data[nameStart : nameStart+nameLen])
		if name == entryName {
			return decompress(method, data[payloadStart:payloadEnd], uncompressedSize)
		}

		offset = payloadEnd
	}
}

// decompress returns the entry payload for the supported methods.
// Unsupported methods degrade to not-found.
func decompress(method uint16, payload []byte, uncompressedSize int) ([]byte, bool) {
	switch method {
	case methodStore:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, true

	case methodDeflate:
		capacity := uncompressedSize
		if capacity <= 0 {
			capacity = len(payload) * 4
		}
		buf := bytes.NewBuffer(make([]byte, 0, capacity))

		fr := flate.NewReader(bytes.NewReader(payload))
		defer fr.Close()

		if _, err := io.Copy(buf, fr); err != nil {
			return nil, false
		}
		return buf.Bytes(), true

	default:
		return nil, false
	}
}
