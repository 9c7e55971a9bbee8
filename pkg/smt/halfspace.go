package smt

import (
	"github.com/vipr-check/vipr-smt/pkg/number"
)

// Term is one already-rendered "(* coefficient factor)" operand of a
// linear combination (or, for a synthesized LIN/RND combination, the sum
// of several such products contributed by different referenced
// constraints — see CombinationHalf). KnownZero marks a term this system
// can prove contributes nothing without performing arithmetic (a literal
// zero coefficient, or every contributing sub-product having one), which
// is the only basis spec.md §4.G allows for skipping a term in sparse
// mode.
type Term struct {
	KnownZero bool
	Expr      Writer
}

// SimpleTerm builds a Term directly from a parsed coefficient and a
// factor (typically a decision variable symbol).
func SimpleTerm(coef number.Number, factor Writer) Term {
	return Term{KnownZero: coef.IsZero(), Expr: List("*", NumberWriter(coef), factor)}
}

// Half is a half-space "(a, b, dir)" as used throughout §4.G: a list of
// per-variable Terms, a target, and a direction expressed as three
// mutually-exclusive boolean flags. For a half-space drawn directly from a
// parsed Constraint the flags are literal true/false (see
// directionFlags); for a half-space synthesized from a LIN/RND
// combination the flags are themselves non-trivial SMT propositions (see
// combinationDirectionFlags), because the combination's effective
// direction depends on a sum of literal numbers this system cannot
// evaluate in Go.
type Half struct {
	Terms        []Term
	Target       Writer
	Eq, Geq, Leq Writer
}

// sumExpr builds "(+ term1 term2 ...)", omitting every KnownZero term,
// padded to the and/or/+ minimum arity.
func sumExpr(terms []Term) Writer {
	var parts []Writer

	for _, t := range terms {
		if t.KnownZero {
			continue
		}

		parts = append(parts, t.Expr)
	}

	return Sum(parts...)
}

// allZeroExpr builds "(and (= term1 0) (= term2 0) ...)", omitting every
// KnownZero term (already trivially "=0").
func allZeroExpr(terms []Term) Writer {
	var parts []Writer

	for _, t := range terms {
		if t.KnownZero {
			continue
		}

		parts = append(parts, List("=", t.Expr, Sym("0")))
	}

	return And(parts...)
}

// equalTermsExpr asserts that two equal-length term lists denote the same
// per-variable value, one equality per position. A position is omitted
// only when BOTH sides are KnownZero (then "0=0" is trivially true);
// if only one side is known zero the comparison is still emitted, since
// omitting it would silently drop a genuine inequality check.
func equalTermsExpr(left, right []Term) Writer {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	var parts []Writer

	for i := 0; i < n; i++ {
		if left[i].KnownZero && right[i].KnownZero {
			continue
		}

		parts = append(parts, List("=", left[i].Expr, right[i].Expr))
	}

	return And(parts...)
}

// RespectBound emits "(dir (+ term1 ... termn) target)", the shared
// sub-emitter spec.md §4.G calls "respect-bound-of coefficient ·
// assignment against target."
func RespectBound(terms []Term, dir number.Direction, target Writer) Writer {
	return List(dirOp(dir), sumExpr(terms), target)
}

// DOM is the domination predicate between two half-spaces (spec.md §4.G):
// either the left side is identically zero and is itself infeasible by
// sign, or the left and right coefficients agree and the two directions
// are consistent under the right's direction tag.
func DOM(left, right Half) Writer {
	branch1 := And(
		allZeroExpr(left.Terms),
		Ite(left.Eq, Distinct(left.Target, Sym("0")),
			Ite(left.Geq, List(">", left.Target, Sym("0")),
				Ite(left.Leq, List("<", left.Target, Sym("0")), False))),
	)

	branch2 := And(
		equalTermsExpr(left.Terms, right.Terms),
		Ite(right.Eq, And(left.Eq, List("=", left.Target, right.Target)),
			Ite(right.Geq, And(left.Geq, List(">=", left.Target, right.Target)),
				Ite(right.Leq, And(left.Leq, List("<=", left.Target, right.Target)), False))),
	)

	return Or(branch1, branch2)
}

// RND is the rounding-legality predicate: every integral-variable term is
// an integer, every non-integral-variable term is zero, and the
// half-space is not an equality.
func RND(terms []Term, integralIdx, nonIntegralIdx []uint, notEq Writer) Writer {
	var parts []Writer

	for _, idx := range integralIdx {
		parts = append(parts, List("is_int", terms[idx].Expr))
	}

	for _, idx := range nonIntegralIdx {
		parts = append(parts, List("=", terms[idx].Expr, Sym("0")))
	}

	parts = append(parts, notEq)

	return And(parts...)
}

// HalfConstraint pairs a half-space's terms/target with its source
// constraint's concrete Direction — used by DIS and the rounding
// part-2 disjunction, which both need the statically-known direction
// rather than the synthesized eq/geq/leq flags Half carries.
type HalfConstraint struct {
	Terms  []Term
	Target Writer
	Dir    number.Direction
}

// DIS is the disjoint-integer-half-spaces predicate used by the UNS
// reason: the two constraints' coefficient vectors are equal; the left
// side's terms are integral at integral indices and zero at non-integral
// indices; both targets are integral; the two directions have opposite
// nonzero sign; and the target-shift relation holds.
func DIS(left, right HalfConstraint, integralIdx, nonIntegralIdx []uint) Writer {
	var parts []Writer

	parts = append(parts, equalTermsExpr(left.Terms, right.Terms))

	for _, idx := range integralIdx {
		parts = append(parts, List("is_int", left.Terms[idx].Expr))
	}

	for _, idx := range nonIntegralIdx {
		parts = append(parts, List("=", left.Terms[idx].Expr, Sym("0")))
	}

	parts = append(parts, List("is_int", left.Target), List("is_int", right.Target))

	leftSign := SignWriter(left.Dir)
	rightSign := SignWriter(right.Dir)
	parts = append(parts,
		Distinct(leftSign, Sym("0")),
		List("=", List("+", leftSign, rightSign), Sym("0")),
	)

	shiftUp := List("=", left.Target, List("+", right.Target, Sym("1")))
	shiftDown := List("=", left.Target, List("-", right.Target, Sym("1")))
	parts = append(parts, Ite(List("=", leftSign, Sym("1")), shiftUp, shiftDown))

	return And(parts...)
}

// combinationDirectionFlags computes the eq/geq/leq flags for a LIN/RND
// combination's synthesized half-space, per spec.md §4.G: "directions
// eq/geq/leq are ⋀ᵢ (dᵢ · s(dirᵢ)) ⟨dir⟩ 0," one conjunction per
// comparator, skipping a term whose multiplier is zero or whose
// constraint direction is Equal (its signed multiplier is always zero).
// Each signed multiplier is a literal numeric SMT term, never
// arithmetically combined by this system; the per-term comparisons
// against zero are genuine SMT content.
func combinationDirectionFlags(multipliers []number.Number, dirs []number.Direction) (eq, geq, leq Writer) {
	n := len(multipliers)
	if len(dirs) < n {
		n = len(dirs)
	}

	var eqParts, geqParts, leqParts []Writer

	for i := 0; i < n; i++ {
		if multipliers[i].IsZero() || dirs[i] == number.Equal {
			continue
		}

		term := signedMultiplier(multipliers[i], dirs[i].SignCode())
		eqParts = append(eqParts, List("=", term, Sym("0")))
		geqParts = append(geqParts, List(">=", term, Sym("0")))
		leqParts = append(leqParts, List("<=", term, Sym("0")))
	}

	return And(eqParts...), And(geqParts...), And(leqParts...)
}
