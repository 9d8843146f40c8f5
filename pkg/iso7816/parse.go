package iso7816

import (
	"errors"
	"fmt"

	"github.com/gregLibert/capdu/pkg/bits"
	"github.com/gregLibert/capdu/pkg/tlv"
)

// COMMAND APDU PARSING:
// The header does not say which case a command uses. The case is inferred from the
// total length L and from the fifth byte B1:
//
//	L == 4                          -> Case 1
//	L == 5                          -> Case 2s (B1 is Le)
//	B1 != 0, L == 5 + B1            -> Case 3s
//	B1 != 0, L == 6 + B1            -> Case 4s (last byte is Le)
//	B1 == 0, L == 7                 -> Case 2e (bytes 6-7 are Le)
//	B1 == 0, L == 7 + B2||B3        -> Case 3e
//	B1 == 0, L == 9 + B2||B3        -> Case 4e (last two bytes are Le)
//
// Each branch is an exact length equality, so a well-formed command matches exactly one.

var (
	// ErrMalformedAPDU is the root of every command parsing error.
	ErrMalformedAPDU = errors.New("malformed command APDU")

	// ErrTooShort reports fewer bytes than a header or an extended length field needs.
	ErrTooShort = fmt.Errorf("%w: too short", ErrMalformedAPDU)

	// ErrInvalidLength reports a total length that matches no case for the header shape.
	ErrInvalidLength = fmt.Errorf("%w: invalid length", ErrMalformedAPDU)
)

// ParseCommandAPDU decodes raw bytes into a CommandAPDU.
// The result never shares memory with raw.
func ParseCommandAPDU(raw []byte) (*CommandAPDU, error) {
	n := len(raw)
	if n < headerLen {
		return nil, fmt.Errorf("%w: length=%d, apdu must be at least %d bytes long", ErrTooShort, n, headerLen)
	}

	cla, ins, p1, p2 := raw[0], raw[1], raw[2], raw[3]

	if n == headerLen {
		return newCommandAPDU(cla, ins, p1, p2, nil, 0), nil
	}

	b1 := int(raw[4])
	if n == headerLen+1 {
		return newCommandAPDU(cla, ins, p1, p2, nil, shortNe(raw[4])), nil
	}

	if b1 != 0 {
		switch n {
		case headerLen + 1 + b1:
			return newCommandAPDU(cla, ins, p1, p2, raw[5:5+b1], 0), nil
		case headerLen + 2 + b1:
			return newCommandAPDU(cla, ins, p1, p2, raw[5:5+b1], shortNe(raw[n-1])), nil
		default:
			return nil, fmt.Errorf("%w: length=%d, b1=%d", ErrInvalidLength, n, b1)
		}
	}

	if n < headerLen+3 {
		return nil, fmt.Errorf("%w: length=%d, b1=%d", ErrTooShort, n, b1)
	}

	l2 := int(bits.Uint16(raw[5], raw[6]))
	if n == headerLen+3 {
		return newCommandAPDU(cla, ins, p1, p2, nil, extendedNe(l2)), nil
	}

	// An extended Lc of zero is never valid.
	if l2 == 0 {
		return nil, fmt.Errorf("%w: length=%d, b1=%d, b2||b3=%d", ErrInvalidLength, n, b1, l2)
	}

	switch n {
	case headerLen + 3 + l2:
		return newCommandAPDU(cla, ins, p1, p2, raw[7:7+l2], 0), nil
	case headerLen + 5 + l2:
		l3 := int(bits.Uint16(raw[n-2], raw[n-1]))
		return newCommandAPDU(cla, ins, p1, p2, raw[7:7+l2], extendedNe(l3)), nil
	default:
		return nil, fmt.Errorf("%w: length=%d, b1=%d, b2||b3=%d", ErrInvalidLength, n, b1, l2)
	}
}

// ParseCommandAPDUHex decodes a textual hex dump such as "00 A4 04 00 00".
func ParseCommandAPDUHex(s string) (*CommandAPDU, error) {
	raw, err := tlv.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex APDU: %w", err)
	}
	return ParseCommandAPDU(raw)
}

func shortNe(le byte) int {
	if le == 0 {
		return MaxShortLe
	}
	return int(le)
}

func extendedNe(le int) int {
	if le == 0 {
		return MaxExtendedLe
	}
	return le
}
