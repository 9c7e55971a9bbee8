package parse

import (
	"strings"
	"testing"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
)

func parseString(t *testing.T, src string) *certificate.Certificate {
	t.Helper()

	cert, err := NewParser(strings.NewReader(src)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	return cert
}

func TestParse_SectionsInDeclaredOrder(t *testing.T) {
	src := `VAR 2 x y
INT 1 0
OBJ min 2 0 1 1 2
CON 1 0
c1 L 10 OBJ
RTP range -inf 10
SOL 1 s1 1 0 3
DER 0
`
	cert := parseString(t, src)

	if got := cert.NumVariables(); got != 2 {
		t.Fatalf("NumVariables = %d, want 2", got)
	}

	if !cert.Integral[0] || cert.Integral[1] {
		t.Fatalf("Integral = %v, want [true false]", cert.Integral)
	}

	if !cert.Minimization {
		t.Fatal("expected minimization objective")
	}

	if len(cert.Constraints) != 1 || cert.Constraints[0].Name != "c1" {
		t.Fatalf("Constraints = %+v", cert.Constraints)
	}

	if !cert.Feasible {
		t.Fatal("expected RTP range to mark the certificate feasible")
	}

	if len(cert.Solutions) != 1 || cert.Solutions[0].Name != "s1" {
		t.Fatalf("Solutions = %+v", cert.Solutions)
	}

	if cert.NumProblem != 1 {
		t.Fatalf("NumProblem = %d, want 1", cert.NumProblem)
	}
}

func TestParse_SectionsOutOfOrder(t *testing.T) {
	// DER/SOL/RTP before CON, CON before VAR/OBJ: spec.md §4.D allows any
	// ordering since every section is self-delimited by its leading count.
	src := `DER 0
SOL 0
RTP infeas
CON 1 0
only E 0 0
VAR 1 x
OBJ max 0
`
	cert := parseString(t, src)

	if cert.Feasible {
		t.Fatal("expected infeas RTP to mark infeasible")
	}

	if len(cert.Constraints) != 1 || cert.Constraints[0].Name != "only" {
		t.Fatalf("Constraints = %+v", cert.Constraints)
	}
}

func TestParse_DerivationWithLinReason(t *testing.T) {
	src := `VAR 1 x
OBJ max 0
CON 1 0
c0 G 0 0
DER 1
c1 G 0 1 0 1 { lin 1 0 1 } -1
`
	cert := parseString(t, src)

	if len(cert.Derivations) != 1 {
		t.Fatalf("Derivations = %+v", cert.Derivations)
	}

	der := cert.Derivations[0]
	if der.Reason.Type != certificate.ReasonLIN {
		t.Fatalf("Reason.Type = %v, want ReasonLIN", der.Reason.Type)
	}

	if len(der.Reason.Terms) != 1 || der.Reason.Terms[0].ConstraintIndex != 0 {
		t.Fatalf("Terms = %+v", der.Reason.Terms)
	}

	if der.LargestIndex != -1 {
		t.Fatalf("LargestIndex = %d, want -1", der.LargestIndex)
	}

	if der.ConstraintIndex != 1 {
		t.Fatalf("ConstraintIndex = %d, want 1 (flat index after the one problem constraint)", der.ConstraintIndex)
	}
}

func TestParse_DerivationWithUnsReason(t *testing.T) {
	src := `VAR 1 x
OBJ max 0
CON 1 0
c0 G 0 0
DER 1
c1 G 0 0 { uns 0 0 0 0 } -1
`
	cert := parseString(t, src)

	r := cert.Derivations[0].Reason
	if r.Type != certificate.ReasonUNS {
		t.Fatalf("Type = %v, want ReasonUNS", r.Type)
	}
}

func TestParse_FractionCoefficient(t *testing.T) {
	src := `VAR 1 x
OBJ max 1 0 1/2
CON 0 0
`
	cert := parseString(t, src)

	if cert.Objective[0].Kind() != 1 { // Fraction
		t.Fatalf("Objective[0].Kind() = %v, want Fraction", cert.Objective[0].Kind())
	}
}

func TestParse_UnknownSectionErrors(t *testing.T) {
	if _, err := NewParser(strings.NewReader("BOGUS 1 2 3")).Parse(); err == nil {
		t.Fatal("expected an error for an unrecognized section token")
	}
}

func TestParse_UnknownDirectionErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 0
CON 1 0
c0 Q 0 0
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error for an unrecognized direction token")
	}
}

func TestParse_UnknownReasonKindErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 0
CON 1 0
c0 G 0 0
DER 1
c1 G 0 0 { bogus } -1
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error for an unrecognized reason kind")
	}
}

func TestParse_MissingOpenBraceErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 0
CON 1 0
c0 G 0 0
DER 1
c1 G 0 0 asm } -1
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error when the reason body is missing its opening brace")
	}
}

func TestParse_OutOfRangeVariableIndexErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 1 5 1
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error for an out-of-range OBJ variable index")
	}
}

func TestParse_MalformedFractionErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 1 0 1/x
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error for a malformed fraction token")
	}
}

func TestParse_ZeroDenominatorErrors(t *testing.T) {
	src := `VAR 1 x
OBJ max 1 0 1/0
`
	if _, err := NewParser(strings.NewReader(src)).Parse(); err == nil {
		t.Fatal("expected an error for a zero-denominator fraction")
	}
}

func TestParse_RTPUnrecognizedTagErrors(t *testing.T) {
	if _, err := NewParser(strings.NewReader("RTP bogus")).Parse(); err == nil {
		t.Fatal("expected an error for an unrecognized RTP tag")
	}
}
