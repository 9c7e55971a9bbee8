package certificate

import (
	"testing"

	"github.com/vipr-check/vipr-smt/pkg/number"
)

func TestSummary_ReportsInfiniteBoundsAndCounts(t *testing.T) {
	cert := &Certificate{
		VariableNames: []string{"x", "y"},
		Constraints:   make([]Constraint, 3),
		NumProblem:    2,
		Solutions:     []Solution{{Name: "s1"}},
		Feasible:      true,
		FeasibleLower: number.NegInf(),
		FeasibleUpper: number.NewInteger([]byte("5")),
	}

	s := cert.Summary()

	if s.NumVariables != 2 {
		t.Errorf("NumVariables = %d, want 2", s.NumVariables)
	}

	if s.NumProblem != 2 || s.NumDerived != 1 {
		t.Errorf("NumProblem/NumDerived = %d/%d, want 2/1", s.NumProblem, s.NumDerived)
	}

	if s.NumSolutions != 1 {
		t.Errorf("NumSolutions = %d, want 1", s.NumSolutions)
	}

	if !s.LowerIsNegInf {
		t.Error("expected LowerIsNegInf true")
	}

	if s.UpperIsPosInf {
		t.Error("expected UpperIsPosInf false for a finite upper bound")
	}
}

func TestNumTotalConstraints(t *testing.T) {
	cert := &Certificate{Constraints: make([]Constraint, 7), NumProblem: 4}

	if got := cert.NumTotalConstraints(); got != 7 {
		t.Errorf("NumTotalConstraints() = %d, want 7", got)
	}

	if got := cert.NumDerived(); got != 3 {
		t.Errorf("NumDerived() = %d, want 3", got)
	}
}
