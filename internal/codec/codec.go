// Package codec handles the stored form of note bodies: zlib-compressed and
// base64-encoded when that is smaller than the plaintext, plaintext
// otherwise. Records written before compression existed carry the
// uncompressed form and a false flag.
package codec

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/mxkcz/notehub/internal/domain"
)

// MaxStoredBytes is the per-document ceiling of the backing store. Stored
// values above it are rejected before any write.
const MaxStoredBytes = 1_000_000

// Compress returns the stored form of text and whether it is compressed.
// It fails only when the stored form would exceed MaxStoredBytes.
func Compress(text string) (string, bool, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		return "", false, err
	}
	if err := zw.Close(); err != nil {
		return "", false, err
	}

	stored := base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(stored) >= len(text) {
		// Compression does not pay off for short bodies.
		if len(text) > MaxStoredBytes {
			return "", false, domain.ErrContentTooLarge
		}
		return text, false, nil
	}
	if len(stored) > MaxStoredBytes {
		return "", false, domain.ErrContentTooLarge
	}
	return stored, true, nil
}

// Decompress restores the plaintext body. Values marked uncompressed pass
// through unchanged; corrupt compressed values yield an empty string so a
// broken record never fails the read path.
func Decompress(stored string, compressed bool) string {
	if !compressed {
		return stored
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return ""
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return ""
	}
	return string(text)
}
