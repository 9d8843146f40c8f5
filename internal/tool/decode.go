package tool

import (
	"context"
	"fmt"
	"io"

	"github.com/gregLibert/capdu/pkg/iso7816"
	"github.com/gregLibert/capdu/pkg/tlv"
	"github.com/ugorji/go/codec"
)

// Format selects how decoded commands are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", s, FormatText, FormatJSON)
	}
}

// CommandView is the JSON shape of a decoded command.
type CommandView struct {
	Case    string `codec:"case"`
	Form    string `codec:"form"`
	CLA     string `codec:"cla"`
	INS     string `codec:"ins"`
	P1      string `codec:"p1"`
	P2      string `codec:"p2"`
	Nc      int    `codec:"nc"`
	Ne      *int   `codec:"ne,omitempty"`
	Data    string `codec:"data,omitempty"`
	Encoded string `codec:"encoded"`
}

// NewCommandView flattens cmd into printable fields.
func NewCommandView(cmd *iso7816.CommandAPDU) CommandView {
	v := CommandView{
		Case:    cmd.Case().String(),
		Form:    cmd.Form().String(),
		CLA:     fmt.Sprintf("%02X", cmd.CLA()),
		INS:     fmt.Sprintf("%02X", cmd.INS()),
		P1:      fmt.Sprintf("%02X", cmd.P1()),
		P2:      fmt.Sprintf("%02X", cmd.P2()),
		Nc:      cmd.Nc(),
		Data:    tlv.EncodeHex(cmd.Data()),
		Encoded: tlv.EncodeHex(cmd.Bytes()),
	}
	if cmd.HasNe() {
		ne := cmd.Ne()
		v.Ne = &ne
	}
	return v
}

// Decode parses every hex APDU in inputs and prints them in the requested format.
// It stops at the first input that is not a well-formed command.
func Decode(ctx context.Context, w io.Writer, inputs []string, format Format) error {
	if len(inputs) == 0 {
		return invalidInput(ctx, fmt.Errorf("no APDU given"), "decode-input", "Nothing to decode")
	}

	cmds := make([]*iso7816.CommandAPDU, 0, len(inputs))
	for i, in := range inputs {
		cmd, err := iso7816.ParseCommandAPDUHex(in)
		if err != nil {
			return invalidInput(ctx, err, "decode-apdu",
				fmt.Sprintf("Cannot decode command APDU #%d", i+1))
		}
		cmds = append(cmds, cmd)
	}

	if format == FormatJSON {
		return writeJSON(ctx, w, cmds)
	}

	for i, cmd := range cmds {
		sep := ""
		if i > 0 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", sep, cmd.Describe()); err != nil {
			return outputFailure(ctx, err, "decode-output", "Cannot write report")
		}
	}
	return nil
}

func writeJSON(ctx context.Context, w io.Writer, cmds []*iso7816.CommandAPDU) error {
	views := make([]CommandView, 0, len(cmds))
	for _, cmd := range cmds {
		views = append(views, NewCommandView(cmd))
	}

	var jh codec.JsonHandle
	jh.Indent = 2

	if err := codec.NewEncoder(w, &jh).Encode(views); err != nil {
		return outputFailure(ctx, err, "decode-output", "Cannot encode JSON report")
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return outputFailure(ctx, err, "decode-output", "Cannot encode JSON report")
	}
	return nil
}
