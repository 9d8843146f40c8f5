// Package tool implements the operations behind the capdu command line.
// Every function writes its result to w and reports bad user input as a fault
// tagged ftag.InvalidArgument.
package tool

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/gregLibert/capdu/pkg/iso7816"
	"github.com/gregLibert/capdu/pkg/tlv"
)

func invalidInput(ctx context.Context, err error, at, issue string) error {
	return fault.Wrap(err,
		fctx.With(ctx, "error_at", at),
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc(issue, issue),
	)
}

func outputFailure(ctx context.Context, err error, at, msg string) error {
	return fault.Wrap(err,
		fctx.With(ctx, "error_at", at),
		ftag.With(ftag.Internal),
		fmsg.With(msg),
	)
}

// ReadInputs collects one hex APDU per non-empty line of r.
// Lines starting with '#' are comments.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string

	scanner := bufio.NewScanner(r)
	// Two hex digits per byte, plus room for separators.
	scanner.Buffer(make([]byte, 0, 4096), 4*iso7816.MaxAPDUBufferSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return inputs, nil
}

// parseByte reads a single header byte given in hex, such as "A4" or "0x80".
func parseByte(name, s string) (byte, error) {
	raw, err := tlv.DecodeHex(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if len(raw) != 1 {
		return 0, fmt.Errorf("%s: want exactly one byte, got %d", name, len(raw))
	}
	return raw[0], nil
}

// emit prints the canonical hex of cmd, followed by its report when describe is set.
func emit(w io.Writer, cmd *iso7816.CommandAPDU, describe bool) error {
	if _, err := fmt.Fprintln(w, tlv.EncodeHex(cmd.Bytes())); err != nil {
		return err
	}
	if describe {
		if _, err := fmt.Fprintln(w, cmd.Describe()); err != nil {
			return err
		}
	}
	return nil
}
