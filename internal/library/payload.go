package library

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

const deflatePrefix = "deflate:"

// DecodePayload decodes a FileInfo.Data string: plain base64, or, when
// prefixed with "deflate:", base64 followed by a deflate-compressed stream.
// The deflate reader is a scoped resource, closed on every return path.
func DecodePayload(data string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(data, deflatePrefix); ok {
		return decodeDeflate(rest)
	}
	return decodeBase64(data)
}

func decodeBase64(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return raw, nil
}

func decodeDeflate(data string) ([]byte, error) {
	compressed, err := decodeBase64(data)
	if err != nil {
		return nil, err
	}

	reader := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = reader.Close() }()

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("inflating deflate payload: %w", err)
	}
	return decoded, nil
}

// Bytes decodes the FileInfo's Data field.
func (f FileInfo) Bytes() ([]byte, error) {
	raw, err := DecodePayload(f.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding file %q: %w", f.Title, err)
	}
	return raw, nil
}
