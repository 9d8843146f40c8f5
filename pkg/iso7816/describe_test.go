package iso7816

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandAPDU_Describe(t *testing.T) {
	cmd, err := ParseCommandAPDUHex("002281B60A83084445475858830214")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	actualLines := strings.Split(cmd.Describe(), "\n")

	expectedLines := []string{
		"=== COMMAND APDU REPORT ===",
		"[1] Header: 00 22 81 B6",
		"    + CLA:     00 -> First Interindustry | Last or only command | SM: None | Channel: 0",
		"    + INS:     22 -> MANAGE SECURITY ENVIRONMENT (Standard)",
		"[2] Body: CASE-3s (Short)",
		"    + Nc:      10",
		"    + Ne:      none",
		`    + Data:    83084445475858830214 ("..DEGXX...")`,
		"[=] DATA OBJECTS:",
		"    - 83 (8): 4445475858830214",
	}

	if diff := cmp.Diff(expectedLines, actualLines); diff != "" {
		t.Errorf("Report mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandAPDU_Describe_UndecodableData(t *testing.T) {
	// Data starts with a long-form length that cannot be represented.
	cmd, err := ParseCommandAPDUHex("00DA00000A0188FFFFFFFFFFFFFFFF")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	actualLines := strings.Split(cmd.Describe(), "\n")

	expectedLines := []string{
		"=== COMMAND APDU REPORT ===",
		"[1] Header: 00 DA 00 00",
		"    + CLA:     00 -> First Interindustry | Last or only command | SM: None | Channel: 0",
		"    + INS:     DA -> PUT DATA (Standard)",
		"[2] Body: CASE-3s (Short)",
		"    + Nc:      10",
		"    + Ne:      none",
		`    + Data:    0188FFFFFFFFFFFFFFFF ("..........")`,
	}

	if diff := cmp.Diff(expectedLines, actualLines); diff != "" {
		t.Errorf("Report mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandAPDU_Describe_Parameters(t *testing.T) {
	cls, _ := NewClass(0x00)

	tests := []struct {
		name     string
		build    func() (*CommandAPDU, error)
		contains []string
	}{
		{
			name:  "Select By AID",
			build: func() (*CommandAPDU, error) { return SelectByAID(cls, []byte("1PAY.SYS.DDF01")) },
			contains: []string{
				"    + INS:     A4 -> SELECT (Standard)",
				"    + Method:  04 -> Select by DF Name (AID)",
				"    + Control: 00 -> First/Only | Return FCI",
				`("1PAY.SYS.DDF01")`,
			},
		},
		{
			name:  "Read Record",
			build: func() (*CommandAPDU, error) { return ReadRecord(cls, 1, 2) },
			contains: []string{
				"    + Target:  SFI 01 (1)",
				"    + P1:      02 -> Record Number 2",
				"    + Mode:    04 -> Ref Num: Read Record P1",
				"[2] Body: CASE-2s (Short)",
				"    + Ne:      256",
			},
		},
		{
			name: "Reserved CLA And INS",
			build: func() (*CommandAPDU, error) {
				return NewCommandAPDU(0xFF, 0x6A, 0x00, 0x00, nil, 0)
			},
			contains: []string{
				"    + CLA:     FF -> invalid CLA value: 0xFF is reserved",
				"    + INS:     6A -> invalid INS 0x6A: 6X and 9X are reserved",
				"[2] Body: CASE-1 (Short)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.build()
			if err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			report := cmd.Describe()
			for _, part := range tt.contains {
				if !strings.Contains(report, part) {
					t.Errorf("Describe() missing %q in:\n%s", part, report)
				}
			}
		})
	}
}
