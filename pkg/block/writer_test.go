package block

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/number"
)

func TestResolveSize_DefaultsWhenZero(t *testing.T) {
	if got := ResolveSize(0, 384*2); got != 2 {
		t.Fatalf("ResolveSize(0, 768) = %d, want 2", got)
	}

	if got := ResolveSize(0, 1); got != 1 {
		t.Fatalf("ResolveSize(0, 1) = %d, want 1 (floor of max(1, D/384))", got)
	}
}

func TestResolveSize_HonorsRequested(t *testing.T) {
	if got := ResolveSize(7, 1000); got != 7 {
		t.Fatalf("ResolveSize(7, 1000) = %d, want 7", got)
	}
}

func TestRanges_PartitionsIntoExpectedFiles(t *testing.T) {
	ranges := Ranges(10, 3)

	want := []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}
	if len(ranges) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(ranges), len(want))
	}

	for i, r := range ranges {
		if r != want[i] {
			t.Fatalf("range %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestRanges_EmptyWhenNoDerived(t *testing.T) {
	if ranges := Ranges(0, 3); ranges != nil {
		t.Fatalf("expected nil ranges for D=0, got %v", ranges)
	}
}

func newTestCertificate() *certificate.Certificate {
	one := number.NewInteger([]byte("1"))
	zero := number.NewInteger([]byte("0"))

	c1 := certificate.Constraint{
		Name:         "c1",
		Coefficients: []number.Number{one},
		Dir:          number.GreaterEqual,
		Target:       zero,
	}

	der := certificate.Constraint{
		Name:         "d1",
		Coefficients: []number.Number{one},
		Dir:          number.GreaterEqual,
		Target:       zero,
	}

	cert := &certificate.Certificate{
		VariableNames: []string{"x"},
		Objective:     []number.Number{one},
		Minimization:  true,
		Feasible:      true,
		FeasibleLower: number.NegInf(),
		FeasibleUpper: number.PosInf(),
		Constraints:   []certificate.Constraint{c1, der},
		NumProblem:    1,
		Solutions: []certificate.Solution{
			{Name: "s1", Values: []number.Number{zero}},
		},
		Derivations: []certificate.Derivation{
			{ConstraintIndex: 1, Reason: certificate.Reason{Type: certificate.ReasonASM}, LargestIndex: -1},
		},
		Deps: stubTable{},
	}

	return cert
}

// stubTable satisfies certificate.DependencyTable with empty assumption
// sets, sufficient for exercising file emission shape without a real
// dependency build.
type stubTable struct{}

func (stubTable) Assumptions(k uint) certificate.AssumptionSet { return stubSet{} }

type stubSet struct{}

func (stubSet) Contains(j uint) bool { return false }
func (stubSet) Members() []uint      { return nil }

func TestWriteBlocks_ProducesExpectedFileSet(t *testing.T) {
	cert := newTestCertificate()
	out := filepath.Join(t.TempDir(), "cert")

	files, err := WriteBlocks(cert, out, 1)
	if err != nil {
		t.Fatalf("WriteBlocks: %v", err)
	}

	wantSuffixes := []string{".DER-1-1", ".SOL", ".DER-solcheck"}
	if len(files) != len(wantSuffixes) {
		t.Fatalf("got %d files, want %d: %v", len(files), len(wantSuffixes), files)
	}

	for i, f := range files {
		if !strings.HasSuffix(f, wantSuffixes[i]) {
			t.Fatalf("file %d = %s, want suffix %s", i, f, wantSuffixes[i])
		}

		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}

		if !strings.HasPrefix(string(data), "(set-info :smt-lib-version 2.6)") {
			t.Fatalf("file %s missing header, got: %s", f, data)
		}

		if !strings.HasSuffix(strings.TrimRight(string(data), "\n"), "(check-sat)") {
			t.Fatalf("file %s missing footer, got: %s", f, data)
		}
	}
}

func TestWriteSingle_WritesOneFile(t *testing.T) {
	cert := newTestCertificate()
	out := filepath.Join(t.TempDir(), "cert.smt2")

	path, err := WriteSingle(cert, out)
	if err != nil {
		t.Fatalf("WriteSingle: %v", err)
	}

	if path != out {
		t.Fatalf("WriteSingle returned %s, want %s", path, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	if !strings.Contains(string(data), "(assert") {
		t.Fatalf("expected at least one assertion in single-file output, got: %s", data)
	}
}
