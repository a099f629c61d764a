package library

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// HexUint16 decodes a JSON number or a "0x..."-prefixed hex string into a
// uint16, matching spec.md §6's start_addr field ("int | \"0x…\" hex-string").
type HexUint16 uint16

// UnmarshalJSON implements json.Unmarshaler.
func (h *HexUint16) UnmarshalJSON(data []byte) error {
	var asNumber uint16
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*h = HexUint16(asNumber)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("decoding start_addr: %w", err)
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(asString, "0x"), "0X")
	v, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		return fmt.Errorf("decoding start_addr %q: %w", asString, err)
	}
	*h = HexUint16(v)
	return nil
}
