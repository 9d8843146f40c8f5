package tlv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []string
		wantErr bool
	}{
		{
			name: "Nested Template",
			data: Hex(
				"6F 0B",        // FCI Template
				"84 03 A00001", // DF Name
				"A5 04",        // Proprietary Template
				"50 02 4142",   // Label "AB"
			),
			want: []string{
				"    - 6F:",
				"      - 84 (3): A00001",
				"      - A5:",
				"        - 50 (2): 4142",
			},
		},
		{
			name: "Flat Control Reference",
			data: Hex("83 08 4445475858830214"),
			want: []string{
				"    - 83 (8): 4445475858830214",
			},
		},
		{
			name: "Empty Data",
			data: nil,
			want: nil,
		},
		{
			name:    "Truncated Value",
			data:    []byte{0x6F, 0x05, 0x84},
			wantErr: true,
		},
		{
			name:    "Oversized Long Form Length",
			data:    Hex("01 88 FFFFFFFFFFFFFFFF"),
			wantErr: true,
		},
		{
			name:    "Long Form Length Beyond Data",
			data:    Hex("5A 82 FFFF 01"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dump(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dump() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMakeSafeASCII(t *testing.T) {
	input := []byte{0x41, 0x42, 0x00, 0x1F, 0x7F, 0x43} // AB, null, US, DEL, C
	want := "AB...C"                                    // 0x7F (127) is > 126, so it becomes dot

	got := MakeSafeASCII(input)
	if got != want {
		t.Errorf("MakeSafeASCII() = %q, want %q", got, want)
	}
}
