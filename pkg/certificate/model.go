// Package certificate holds the parsed representation of a VIPR
// certificate: variables, constraints, solutions, derivations and their
// justifying reasons. Types here are pure data, borrowed by index from the
// flat arrays they live in; nothing in this package does arithmetic on a
// Number or interprets certificate semantics.
package certificate

import "github.com/vipr-check/vipr-smt/pkg/number"

// Constraint is a named linear form: a dense coefficient per variable, a
// relational Direction, and a target Number.
type Constraint struct {
	Name         string
	Coefficients []number.Number
	Dir          number.Direction
	Target       number.Number
}

// Solution is a named dense assignment of one Number per variable.
type Solution struct {
	Name   string
	Values []number.Number
}

// ReasonType discriminates how a derived constraint was justified.
type ReasonType uint8

const (
	// ReasonASM is an unjustified assumption.
	ReasonASM ReasonType = iota
	// ReasonLIN is a non-negative linear combination of earlier constraints.
	ReasonLIN
	// ReasonRND is an integer rounding of a linear combination.
	ReasonRND
	// ReasonUNS is a case split over two disjoint integer half-spaces.
	ReasonUNS
	// ReasonSOL is justified by the claimed solution set.
	ReasonSOL
)

// Term is one (constraint index, multiplier) pair referenced by a LIN or
// RND reason.
type Term struct {
	ConstraintIndex uint
	Multiplier      number.Number
}

// Reason is a tagged variant carrying whatever payload its Type requires.
// ASM and SOL carry nothing; LIN and RND carry an ordered list of Terms;
// UNS carries exactly the four indices (I1, L1, I2, L2).
type Reason struct {
	Type  ReasonType
	Terms []Term // LIN, RND only

	// UNS only.
	I1, L1, I2, L2 uint
}

// Derivation is a (constraint index, reason, largest-index) triple. The
// constraint it justifies is the one appended at the same position in the
// certificate's flat constraint sequence.
type Derivation struct {
	ConstraintIndex uint
	Reason          Reason
	LargestIndex    int64
}

// Certificate aggregates everything parsed from a VIPR input file, plus the
// precomputed partitions and dependency table built by pkg/deps.
type Certificate struct {
	// VariableNames in declaration order; NumVariables == len(VariableNames).
	VariableNames []string
	// Integral marks, per variable index, whether INT declared it integral.
	Integral []bool
	// IntegralIndices and NonIntegralIndices are precomputed partitions of
	// [0, NumVariables) by the Integral flag.
	IntegralIndices    []uint
	NonIntegralIndices []uint

	// Objective is the dense coefficient vector, length NumVariables.
	Objective     []number.Number
	Minimization  bool
	Feasible      bool
	FeasibleLower number.Number
	FeasibleUpper number.Number

	// Constraints is the flat sequence: [0, NumProblem) are problem
	// constraints, [NumProblem, NumProblem+NumDerived) are derived.
	Constraints []Constraint
	NumProblem  uint

	Solutions   []Solution
	Derivations []Derivation

	// Deps is populated by pkg/deps after parsing; nil until then.
	Deps DependencyTable
}

// NumVariables returns the number of declared variables.
func (c *Certificate) NumVariables() int { return len(c.VariableNames) }

// NumDerived returns the number of derived constraints (D in spec.md).
func (c *Certificate) NumDerived() uint {
	return uint(len(c.Constraints)) - c.NumProblem
}

// NumTotalConstraints returns P+D, the length of the flat constraint
// sequence.
func (c *Certificate) NumTotalConstraints() uint {
	return uint(len(c.Constraints))
}

// DependencyTable maps a derived constraint's flat index to its transitive
// assumption set A(k); see pkg/deps for construction. Declared here (rather
// than in pkg/deps) so Certificate can hold one without an import cycle.
type DependencyTable interface {
	// Assumptions returns A(k) for a derived index k.
	Assumptions(k uint) AssumptionSet
}

// AssumptionSet is the read-only view of A(k) the formula emitter needs: a
// membership test and an ascending enumeration.
type AssumptionSet interface {
	Contains(j uint) bool
	Members() []uint
}

// Summary holds the bookkeeping the CLI's one-line diagnostics (§6)
// needs, computed once rather than re-walked at the call site.
type Summary struct {
	NumVariables  int
	NumProblem    uint
	NumDerived    uint
	NumSolutions  int
	Feasible      bool
	LowerIsNegInf bool
	UpperIsPosInf bool
}

// Summary computes the §6 diagnostics fields from this certificate.
func (c *Certificate) Summary() Summary {
	return Summary{
		NumVariables:  c.NumVariables(),
		NumProblem:    c.NumProblem,
		NumDerived:    c.NumDerived(),
		NumSolutions:  len(c.Solutions),
		Feasible:      c.Feasible,
		LowerIsNegInf: c.FeasibleLower.Kind() == number.NegativeInfinity,
		UpperIsPosInf: c.FeasibleUpper.Kind() == number.PositiveInfinity,
	}
}
