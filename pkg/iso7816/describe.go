package iso7816

import (
	"fmt"
	"strings"

	"github.com/gregLibert/capdu/pkg/tlv"
)

// Describe generates a detailed, ASCII-formatted report of the command.
// It breaks down the header, the encoding case, and the data field. When the data
// field is valid BER-TLV, its data objects are listed as well.
func (c *CommandAPDU) Describe() string {
	var sb strings.Builder

	sb.WriteString("=== COMMAND APDU REPORT ===\n")
	sb.WriteString(fmt.Sprintf("[1] Header: %02X %02X %02X %02X\n", c.cla, c.ins, c.p1, c.p2))

	if cls, err := c.Class(); err != nil {
		sb.WriteString(fmt.Sprintf("    + CLA:     %02X -> %v\n", c.cla, err))
	} else {
		sb.WriteString(fmt.Sprintf("    + CLA:     %02X -> %s\n", c.cla, cls.Verbose()))
	}

	ins, err := c.Instruction()
	if err != nil {
		sb.WriteString(fmt.Sprintf("    + INS:     %02X -> %v\n", c.ins, err))
	} else {
		format := "Standard"
		if ins.IsBERTLV {
			format = "BER-TLV"
		}
		sb.WriteString(fmt.Sprintf("    + INS:     %02X -> %s (%s)\n", c.ins, ins.Raw, format))
	}

	var params []string
	switch InsCode(c.ins) {
	case INS_SELECT:
		params = describeSelect(c)
	case INS_READ_RECORD:
		params = describeReadRecord(c)
	}
	for _, line := range params {
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("[2] Body: %s (%s)\n", c.Case(), c.Form()))
	sb.WriteString(fmt.Sprintf("    + Nc:      %d\n", len(c.data)))

	if c.HasNe() {
		sb.WriteString(fmt.Sprintf("    + Ne:      %d\n", c.ne))
	} else {
		sb.WriteString("    + Ne:      none\n")
	}

	if len(c.data) > 0 {
		sb.WriteString(fmt.Sprintf("    + Data:    %X (%q)\n", c.data, tlv.MakeSafeASCII(c.data)))

		if objects, err := tlv.Dump(c.data); err == nil && len(objects) > 0 {
			sb.WriteString("[=] DATA OBJECTS:\n")
			sb.WriteString(strings.Join(objects, "\n"))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
