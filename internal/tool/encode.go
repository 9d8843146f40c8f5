package tool

import (
	"context"
	"fmt"
	"io"

	"github.com/gregLibert/capdu/pkg/iso7816"
	"github.com/gregLibert/capdu/pkg/tlv"
)

// EncodeParams holds the fields of a command given on the command line.
// Header bytes and data are hex; Ne is decimal with 0 meaning no Le field.
type EncodeParams struct {
	CLA, INS, P1, P2 string
	Data             string
	Ne               int
	Describe         bool
}

// Encode builds a command from p and prints its canonical encoding.
func Encode(ctx context.Context, w io.Writer, p EncodeParams) error {
	var header [4]byte
	for i, f := range []struct{ name, value string }{
		{"cla", p.CLA}, {"ins", p.INS}, {"p1", p.P1}, {"p2", p.P2},
	} {
		b, err := parseByte(f.name, f.value)
		if err != nil {
			return invalidInput(ctx, err, "encode-header", fmt.Sprintf("Invalid %s byte", f.name))
		}
		header[i] = b
	}

	data, err := tlv.DecodeHex(p.Data)
	if err != nil {
		return invalidInput(ctx, err, "encode-data", "Invalid data field")
	}

	cmd, err := iso7816.NewCommandAPDU(header[0], header[1], header[2], header[3], data, p.Ne)
	if err != nil {
		return invalidInput(ctx, err, "encode-command", "Command cannot be encoded")
	}

	return emit(w, cmd, p.Describe)
}

// Select prints a SELECT by AID command, or SELECT MF when aid is empty.
func Select(ctx context.Context, w io.Writer, claHex, aidHex string, describe bool) error {
	cls, err := parseClass(claHex)
	if err != nil {
		return invalidInput(ctx, err, "select-class", "Invalid class byte")
	}

	aid, err := tlv.DecodeHex(aidHex)
	if err != nil {
		return invalidInput(ctx, err, "select-aid", "Invalid AID")
	}

	var cmd *iso7816.CommandAPDU
	if len(aid) == 0 {
		cmd, err = iso7816.SelectMF(cls)
	} else {
		cmd, err = iso7816.SelectByAID(cls, aid)
	}
	if err != nil {
		return invalidInput(ctx, err, "select-build", "Cannot build SELECT command")
	}

	return emit(w, cmd, describe)
}

// ReadRecord prints a READ RECORD command for record of sfi.
// When all is set, every record from record onwards is requested.
func ReadRecord(ctx context.Context, w io.Writer, claHex string, sfi, record int, all, describe bool) error {
	cls, err := parseClass(claHex)
	if err != nil {
		return invalidInput(ctx, err, "read-record-class", "Invalid class byte")
	}

	if sfi < 0 || sfi > 30 || record < 0 || record > 0xFF {
		return invalidInput(ctx, fmt.Errorf("sfi=%d, record=%d", sfi, record),
			"read-record-args", "SFI must be 0-30 and record 0-255")
	}

	build := iso7816.ReadRecord
	if all {
		build = iso7816.ReadAllRecords
	}

	cmd, err := build(cls, byte(sfi), byte(record))
	if err != nil {
		return invalidInput(ctx, err, "read-record-build", "Cannot build READ RECORD command")
	}

	return emit(w, cmd, describe)
}

func parseClass(claHex string) (iso7816.Class, error) {
	b, err := parseByte("cla", claHex)
	if err != nil {
		return iso7816.Class{}, err
	}
	return iso7816.NewClass(b)
}
