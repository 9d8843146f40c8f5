package iso7816

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gregLibert/capdu/pkg/bits"
)

// COMMAND APDU (C-APDU) structure and encodings according to ISO/IEC 7816-3 and 7816-4.
//
// A command consists of a mandatory Header (4 bytes) and an optional Body.
//
// 1. Header:
//   - CLA (Class): Security, Chaining, Logical Channel.
//   - INS (Instruction): The specific command to execute.
//   - P1, P2 (Parameters): Command modifiers.
//
// 2. Body:
//   - Lc (Length Command): Number of bytes in the data field (Nc).
//   - Data: The command payload.
//   - Le (Length Expected): Maximum number of bytes expected in the response (Ne).
//
// ENCODING CASES:
//
//	Case 1   |CLA|INS|P1|P2|                             len = 4
//	Case 2s  |CLA|INS|P1|P2|LE|                          len = 5
//	Case 3s  |CLA|INS|P1|P2|LC|..DATA..|                 len = 6..260
//	Case 4s  |CLA|INS|P1|P2|LC|..DATA..|LE|              len = 7..261
//	Case 2e  |CLA|INS|P1|P2|00|LE1|LE2|                  len = 7
//	Case 3e  |CLA|INS|P1|P2|00|LC1|LC2|..DATA..|         len = 8..65542
//	Case 4e  |CLA|INS|P1|P2|00|LC1|LC2|..DATA..|LE1|LE2| len = 10..65544
//
// LE, LE1|LE2 may be zero: it encodes the largest Ne of the form (256 or 65536).
// LC must not be 0x00 and LC1|LC2 must not be 0x0000.
//
// LENGTH MODES:
//   - Short Length: Lc/Le encoded on 1 byte (Max 255/256).
//   - Extended Length: Lc/Le encoded on 2 bytes behind a 0x00 marker (Max 65535/65536).
//     Extended mode is used as soon as Nc > 255 or Ne > 256.

// APDU Limits and Constants according to ISO 7816-3.
const (
	// MaxShortLc is the maximum data length (Nc) encodable in Short Length mode (1 byte).
	MaxShortLc = 255

	// MaxShortLe is the maximum expected response length (Ne) encodable in Short Length mode.
	// In Short mode, 0x00 encodes 256.
	MaxShortLe = 256

	// MaxExtendedLc is the limit for Lc in Extended mode (16-bit unsigned).
	MaxExtendedLc = 65535

	// MaxExtendedLe is the maximum Ne encodable in Extended Length mode.
	// In Extended mode, 0x0000 encodes 65536.
	MaxExtendedLe = 65536

	// MaxAPDUBufferSize is the size of the largest command (Case 4e with full data).
	// Calculation: Header(4) + ExtLc(3) + MaxData(65535) + ExtLe(2).
	MaxAPDUBufferSize = headerLen + 3 + MaxExtendedLc + 2
)

const headerLen = 4

// ErrInvalidCommand is returned when command fields cannot be carried by any encoding case.
var ErrInvalidCommand = errors.New("invalid command APDU")

// CommandAPDU represents a command sent to the card.
// It is immutable: values are fixed by the constructor or the parser,
// and accessors hand out copies of the data field.
type CommandAPDU struct {
	cla, ins, p1, p2 byte
	data             []byte
	ne               int // Expected response length (0 means no Le field)
}

// NewCommandAPDU creates a command from raw header bytes.
// A nil or empty data slice means no data field. An ne of 0 means no Le field;
// MaxShortLe and MaxExtendedLe request as many bytes as the encoding allows.
func NewCommandAPDU(cla, ins, p1, p2 byte, data []byte, ne int) (*CommandAPDU, error) {
	if len(data) > MaxExtendedLc {
		return nil, fmt.Errorf("%w: data length %d exceeds %d", ErrInvalidCommand, len(data), MaxExtendedLc)
	}
	if ne < 0 || ne > MaxExtendedLe {
		return nil, fmt.Errorf("%w: ne %d out of range [0, %d]", ErrInvalidCommand, ne, MaxExtendedLe)
	}
	return newCommandAPDU(cla, ins, p1, p2, data, ne), nil
}

// NewCommand creates a command from an interpreted Class and Instruction.
func NewCommand(cla Class, ins Instruction, p1, p2 byte, data []byte, ne int) (*CommandAPDU, error) {
	class, err := cla.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode Class: %w", err)
	}
	return NewCommandAPDU(class, byte(ins.Raw), p1, p2, data, ne)
}

// newCommandAPDU skips range checks; callers guarantee them.
func newCommandAPDU(cla, ins, p1, p2 byte, data []byte, ne int) *CommandAPDU {
	c := &CommandAPDU{cla: cla, ins: ins, p1: p1, p2: p2, ne: ne}
	if len(data) > 0 {
		c.data = bytes.Clone(data)
	}
	return c
}

// CLA returns the raw class byte.
func (c *CommandAPDU) CLA() byte { return c.cla }

// INS returns the raw instruction byte.
func (c *CommandAPDU) INS() byte { return c.ins }

// P1 returns the first parameter byte.
func (c *CommandAPDU) P1() byte { return c.p1 }

// P2 returns the second parameter byte.
func (c *CommandAPDU) P2() byte { return c.p2 }

// Data returns a copy of the data field, nil when absent.
func (c *CommandAPDU) Data() []byte { return bytes.Clone(c.data) }

// Nc returns the length of the data field.
func (c *CommandAPDU) Nc() int { return len(c.data) }

// Ne returns the expected response length, 0 when no Le field is present.
func (c *CommandAPDU) Ne() int { return c.ne }

// HasNe reports whether the command carries an Le field.
func (c *CommandAPDU) HasNe() bool { return c.ne > 0 }

// Class interprets the CLA byte.
func (c *CommandAPDU) Class() (Class, error) { return NewClass(c.cla) }

// Instruction interprets the INS byte.
func (c *CommandAPDU) Instruction() (Instruction, error) { return NewInstruction(InsCode(c.ins)) }

// Form returns the length encoding the command needs.
func (c *CommandAPDU) Form() LengthForm {
	return formOf(len(c.data), c.ne)
}

// Case returns the ISO 7816-3 encoding case Bytes will produce.
func (c *CommandAPDU) Case() Case {
	extended := c.Form() == ExtendedForm

	switch {
	case len(c.data) == 0 && c.ne == 0:
		return Case1
	case len(c.data) == 0:
		if extended {
			return Case2Extended
		}
		return Case2Short
	case c.ne == 0:
		if extended {
			return Case3Extended
		}
		return Case3Short
	default:
		if extended {
			return Case4Extended
		}
		return Case4Short
	}
}

// Bytes encodes the CommandAPDU into its byte representation (C-APDU).
// The Short or Extended encoding is selected from Nc and Ne.
func (c *CommandAPDU) Bytes() []byte {
	nc := len(c.data)

	buf := new(bytes.Buffer)
	buf.Grow(headerLen + 3 + nc + 2)

	// 1. Header
	buf.Write([]byte{c.cla, c.ins, c.p1, c.p2})

	switch c.Case() {
	case Case2Short:
		buf.WriteByte(shortLe(c.ne))

	case Case2Extended:
		// No Lc: a leading 00 distinguishes the extended Le from a short Lc.
		buf.WriteByte(0x00)
		buf.Write(extendedLe(c.ne))

	case Case3Short:
		buf.WriteByte(byte(nc))
		buf.Write(c.data)

	case Case3Extended:
		buf.Write(extendedLc(nc))
		buf.Write(c.data)

	case Case4Short:
		buf.WriteByte(byte(nc))
		buf.Write(c.data)
		buf.WriteByte(shortLe(c.ne))

	case Case4Extended:
		buf.Write(extendedLc(nc))
		buf.Write(c.data)
		buf.Write(extendedLe(c.ne))
	}

	return buf.Bytes()
}

// Equal reports whether both commands carry the same header, data and Ne.
func (c *CommandAPDU) Equal(o *CommandAPDU) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.cla == o.cla && c.ins == o.ins && c.p1 == o.p1 && c.p2 == o.p2 &&
		c.ne == o.ne && bytes.Equal(c.data, o.data)
}

// String returns a readable representation of the command meta-data.
func (c *CommandAPDU) String() string {
	ne := "none"
	if c.HasNe() {
		ne = fmt.Sprintf("%d", c.ne)
	}
	return fmt.Sprintf("%s | CLA: %02X, INS: %02X, P1: %02X, P2: %02X | Nc: %d | Ne: %s",
		c.Case(), c.cla, c.ins, c.p1, c.p2, len(c.data), ne)
}

func shortLe(ne int) byte {
	if ne == MaxShortLe {
		return 0x00 // 0x00 represents 256
	}
	return byte(ne)
}

func extendedLe(ne int) []byte {
	if ne == MaxExtendedLe {
		return []byte{0x00, 0x00} // 0x0000 represents 65536
	}
	hi, lo := bits.PutUint16(uint16(ne))
	return []byte{hi, lo}
}

// extendedLc returns the 00 marker followed by the 2-byte Lc.
func extendedLc(nc int) []byte {
	hi, lo := bits.PutUint16(uint16(nc))
	return []byte{0x00, hi, lo}
}
