package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
	"github.com/gregLibert/capdu/pkg/iso7816"
	"github.com/gregLibert/capdu/pkg/tlv"
	"gopkg.in/yaml.v3"
)

// Vector is one reference command in a vectors file.
// A vector either names the expected case and lengths, or the error kind
// ("too-short", "invalid-length") decoding must report.
// The iso7816 package tests read the same files; keep the schemas aligned.
type Vector struct {
	Name      string `yaml:"name"`
	APDU      string `yaml:"apdu"`
	Case      string `yaml:"case"`
	Nc        int    `yaml:"nc"`
	Ne        int    `yaml:"ne"`
	Reencoded string `yaml:"reencoded"`
	Error     string `yaml:"error"`
}

type vectorFile struct {
	Vectors []Vector `yaml:"vectors"`
}

var errorKinds = map[string]error{
	"too-short":      iso7816.ErrTooShort,
	"invalid-length": iso7816.ErrInvalidLength,
}

// LoadVectors reads a YAML vectors file.
func LoadVectors(path string) ([]Vector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file vectorFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(file.Vectors) == 0 {
		return nil, fmt.Errorf("%s: no vectors found", path)
	}
	return file.Vectors, nil
}

// Check decodes v.APDU and compares the outcome with the expectation.
func (v Vector) Check() error {
	input, err := tlv.DecodeHex(v.APDU)
	if err != nil {
		return fmt.Errorf("bad apdu field: %w", err)
	}

	cmd, err := iso7816.ParseCommandAPDU(input)

	if v.Error != "" {
		want, ok := errorKinds[v.Error]
		if !ok {
			return fmt.Errorf("unknown error kind %q", v.Error)
		}
		if !errors.Is(err, want) {
			return fmt.Errorf("got error %v, want %s", err, v.Error)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if got := cmd.Case().String(); got != v.Case {
		return fmt.Errorf("case = %s, want %s", got, v.Case)
	}

	want := input
	if v.Reencoded != "" {
		if want, err = tlv.DecodeHex(v.Reencoded); err != nil {
			return fmt.Errorf("bad reencoded field: %w", err)
		}
	}

	if cmd.Nc() != v.Nc || cmd.Ne() != v.Ne {
		return fmt.Errorf("nc/ne = %d/%d, want %d/%d", cmd.Nc(), cmd.Ne(), v.Nc, v.Ne)
	}
	if got := cmd.Bytes(); !bytes.Equal(got, want) {
		return fmt.Errorf("encoded %X, want %X", got, want)
	}
	return nil
}

// Verify checks every vector in path and prints one PASS/FAIL line each.
// It fails when any vector does not match.
func Verify(ctx context.Context, w io.Writer, path string) error {
	vectors, err := LoadVectors(path)
	if err != nil {
		return invalidInput(ctx, err, "verify-load", "Cannot load vectors file")
	}

	failed := 0
	for _, v := range vectors {
		if err := v.Check(); err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", v.Name, err)
			continue
		}
		fmt.Fprintf(w, "PASS %s\n", v.Name)
	}
	fmt.Fprintf(w, "%d/%d vectors passed\n", len(vectors)-failed, len(vectors))

	if failed > 0 {
		return fault.Wrap(fmt.Errorf("%d of %d vectors failed", failed, len(vectors)),
			ftag.With(ftag.InvalidArgument),
		)
	}
	return nil
}
