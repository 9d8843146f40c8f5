package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Hex constructs a byte slice from a series of hex strings.
// It panics on invalid input and is meant for fixtures and constants.
func Hex(parts ...string) []byte {
	data, err := DecodeHex(strings.Join(parts, ""))
	if err != nil {
		panic(err.Error())
	}
	return data
}

// DecodeHex converts a textual hex dump into raw bytes.
// Whitespace is ignored anywhere, so "00 A4 04 00" and wrapped dumps are accepted,
// as is a leading 0x/0X prefix. Case does not matter.
func DecodeHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	clean = strings.TrimPrefix(clean, "0x")
	clean = strings.TrimPrefix(clean, "0X")

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input '%s': %w", clean, err)
	}
	return data, nil
}

// EncodeHex renders data as upper-case hex without separators.
func EncodeHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}
