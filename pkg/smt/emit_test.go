package smt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/number"
)

func TestWriteDerivationRange_WrapsHeaderAndFooterAroundEachAssert(t *testing.T) {
	cert := oneVarCert(t, 1, []certificate.Reason{{Type: certificate.ReasonASM}})

	var buf bytes.Buffer
	if err := WriteDerivationRange(&buf, cert, 0, 1); err != nil {
		t.Fatalf("WriteDerivationRange: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, Header) {
		t.Error("expected output to start with the fixed header")
	}

	if !strings.HasSuffix(got, Footer) {
		t.Error("expected output to end with the fixed footer")
	}

	if !strings.Contains(got, "(assert ") {
		t.Error("expected at least one assertion between header and footer")
	}
}

func TestWriteDerivationRange_EmptyRangeIsJustHeaderAndFooter(t *testing.T) {
	cert := oneVarCert(t, 1, nil)

	var buf bytes.Buffer
	if err := WriteDerivationRange(&buf, cert, 0, 0); err != nil {
		t.Fatalf("WriteDerivationRange: %v", err)
	}

	if got := buf.String(); got != Header+Footer {
		t.Errorf("got %q, want header+footer with no assertions", got)
	}
}

func TestWriteSolutionFile_WrapsTopLevelSOL(t *testing.T) {
	cert := feasCert(t, true)

	var buf bytes.Buffer
	if err := WriteSolutionFile(&buf, cert); err != nil {
		t.Fatalf("WriteSolutionFile: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, Header) || !strings.HasSuffix(got, Footer) {
		t.Errorf("malformed file: %q", got)
	}
}

func TestWriteSolutionCheckFile_WrapsTerminalBlock(t *testing.T) {
	cert := feasCert(t, true)

	var buf bytes.Buffer
	if err := WriteSolutionCheckFile(&buf, cert); err != nil {
		t.Fatalf("WriteSolutionCheckFile: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, Header) || !strings.HasSuffix(got, Footer) {
		t.Errorf("malformed file: %q", got)
	}
}

func TestWriteSingleFile_ContainsAllThreeSections(t *testing.T) {
	cert := oneVarCert(t, 1, []certificate.Reason{{Type: certificate.ReasonASM}})
	cert.Feasible = true
	cert.FeasibleLower = number.NegInf()
	cert.FeasibleUpper = number.PosInf()
	cert.Solutions = []certificate.Solution{{Name: "s", Values: []number.Number{one()}}}

	var buf bytes.Buffer
	if err := WriteSingleFile(&buf, cert); err != nil {
		t.Fatalf("WriteSingleFile: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, Header) || !strings.HasSuffix(got, Footer) {
		t.Errorf("malformed file: %q", got)
	}

	if strings.Count(got, "(assert ") != 3 {
		t.Errorf("expected exactly 3 top-level asserts (1 derivation + SOL + solcheck), got %d", strings.Count(got, "(assert "))
	}
}
