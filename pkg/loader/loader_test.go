package loader

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/densitool/pkg/errors"
)

const sampleListing = `name lx ly ux uy poly_count md5sum
design_a 0 0 1000 1000 500 abc123
design_b 0 0 2000 500 200 def456
`

func TestLoadSample(t *testing.T) {
	lib, err := Load(strings.NewReader(sampleListing), Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", lib.Len())
	}

	designs := lib.Designs()

	a := designs[0]
	if a.Name != "design_a" || a.PolyCount != 500 || a.Checksum != "abc123" {
		t.Errorf("design_a parsed wrong: %+v", a)
	}
	if math.Abs(a.AreaMM2-1.0) > 1e-9 {
		t.Errorf("design_a AreaMM2 = %v, want 1.0", a.AreaMM2)
	}
	if math.Abs(a.Density-500.0) > 1e-9 {
		t.Errorf("design_a Density = %v, want 500.0", a.Density)
	}

	b := designs[1]
	if math.Abs(b.AreaMM2-1.0) > 1e-9 {
		t.Errorf("design_b AreaMM2 = %v, want 1.0", b.AreaMM2)
	}
	if math.Abs(b.Density-200.0) > 1e-9 {
		t.Errorf("design_b Density = %v, want 200.0", b.Density)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	input := `name lx ly ux uy poly_count md5sum
short_row 0 0 1000 1000 500
design_a 0 0 1000 1000 500 abc123
long_row 0 0 1000 1000 500 abc123 extra

design_b 0 0 2000 500 200 def456
`
	skipped := 0
	lib, err := Load(strings.NewReader(input), Options{
		Logger: func(msg string, args ...any) { skipped++ },
	})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (malformed rows must vanish silently)", lib.Len())
	}
	if lib.Designs()[0].Name != "design_a" || lib.Designs()[1].Name != "design_b" {
		t.Errorf("wrong designs survived the skip: %+v", lib.Designs())
	}
	if skipped != 3 {
		// short row, long row, blank line
		t.Errorf("skip diagnostics = %d, want 3", skipped)
	}
}

func TestLoadStrictFailsOnMalformedRow(t *testing.T) {
	input := `name lx ly ux uy poly_count md5sum
design_a 0 0 1000 1000 500 abc123
short_row 0 0 1000 1000 500
`
	_, err := Load(strings.NewReader(input), Options{Policy: PolicyStrict})
	if err == nil {
		t.Fatal("strict load should fail on a malformed row")
	}
	if !errors.Is(err, errors.ErrCodeMalformedRow) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeMalformedRow)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestLoadNonNumericTokenFailsBothPolicies(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad_coordinate", "design_a 0 zero 1000 1000 500 abc123", "ly"},
		{"bad_count", "design_a 0 0 1000 1000 many abc123", "poly_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "name lx ly ux uy poly_count md5sum\n" + tt.row + "\n"

			for _, policy := range []Policy{PolicySkip, PolicyStrict} {
				_, err := Load(strings.NewReader(input), Options{Policy: policy})
				if err == nil {
					t.Fatalf("policy %s: load should fail on non-numeric token", policy)
				}
				if !errors.Is(err, errors.ErrCodeParse) {
					t.Errorf("policy %s: error code = %q, want %q", policy, errors.GetCode(err), errors.ErrCodeParse)
				}
				if !strings.Contains(err.Error(), tt.column) {
					t.Errorf("policy %s: error should name column %s: %v", policy, tt.column, err)
				}
			}
		})
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	lib, err := Load(strings.NewReader("name lx ly ux uy poly_count md5sum\n"), Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for header-only input", lib.Len())
	}
}

func TestLoadEmptyInput(t *testing.T) {
	lib, err := Load(strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for empty input", lib.Len())
	}
}

func TestLoadHeaderNotValidated(t *testing.T) {
	// The header is dropped without inspection, even when it happens to
	// look like a data row.
	input := "design_x 0 0 1000 1000 99 ffffff\ndesign_a 0 0 1000 1000 500 abc123\n"
	lib, err := Load(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lib.Len() != 1 || lib.Designs()[0].Name != "design_a" {
		t.Errorf("first line must be consumed as header, got %+v", lib.Designs())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.txt")
	if err := os.WriteFile(path, []byte(sampleListing), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lib.Len())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"), Options{})
	if err == nil {
		t.Fatal("LoadFile should fail for a missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestPolicyString(t *testing.T) {
	if PolicySkip.String() != "skip" {
		t.Errorf("PolicySkip.String() = %q", PolicySkip.String())
	}
	if PolicyStrict.String() != "strict" {
		t.Errorf("PolicyStrict.String() = %q", PolicyStrict.String())
	}
}
