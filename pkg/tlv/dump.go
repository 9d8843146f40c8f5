// Package tlv converts between textual hex dumps and raw bytes, and renders
// BER-TLV (Basic Encoding Rules - Tag-Length-Value) data as a readable tag tree.
package tlv

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// Dump decodes data as BER-TLV and returns one line per data object.
// Constructed objects are followed by their children, indented one level deeper.
// Lines carry no trailing newline so callers can join them freely.
func Dump(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	packets, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("bertlv decode failed: %w", err)
	}

	var lines []string
	appendPackets(&lines, packets, 0)
	return lines, nil
}

// decode wraps bertlv.Decode, which panics instead of failing on some long-form
// lengths (e.g. 88 FFFFFFFFFFFFFFFF).
func decode(data []byte) (packets []bertlv.TLV, err error) {
	defer func() {
		if r := recover(); r != nil {
			packets, err = nil, fmt.Errorf("malformed BER-TLV data: %v", r)
		}
	}()
	return bertlv.Decode(data)
}

func appendPackets(lines *[]string, packets []bertlv.TLV, depth int) {
	indent := "    " + strings.Repeat("  ", depth)

	for _, p := range packets {
		tag := strings.ToUpper(p.Tag)
		if len(p.TLVs) > 0 {
			*lines = append(*lines, fmt.Sprintf("%s- %s:", indent, tag))
			appendPackets(lines, p.TLVs, depth+1)
			continue
		}
		*lines = append(*lines, fmt.Sprintf("%s- %s (%d): %s", indent, tag, len(p.Value), EncodeHex(p.Value)))
	}
}

// MakeSafeASCII replaces every non-printable byte with a dot.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}
