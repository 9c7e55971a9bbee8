package smt

import (
	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/number"
)

// ConstraintHalf builds the half-space a parsed Constraint denotes
// directly: one SimpleTerm per variable, its literal target, and its
// direction rendered as three literal boolean flags.
func ConstraintHalf(cert *certificate.Certificate, c certificate.Constraint) Half {
	eq, geq, leq := directionFlags(c.Dir)

	terms := make([]Term, len(c.Coefficients))
	for j, coef := range c.Coefficients {
		terms[j] = SimpleTerm(coef, VarWriter(cert.VariableNames[j]))
	}

	return Half{Terms: terms, Target: NumberWriter(c.Target), Eq: eq, Geq: geq, Leq: leq}
}

// ConstraintHalfConstraint is ConstraintHalf's counterpart for the DIS and
// rnd-part2 sub-emitters, which need the constraint's literal Direction
// rather than Half's synthesized eq/geq/leq flags.
func ConstraintHalfConstraint(cert *certificate.Certificate, c certificate.Constraint) HalfConstraint {
	terms := make([]Term, len(c.Coefficients))
	for j, coef := range c.Coefficients {
		terms[j] = SimpleTerm(coef, VarWriter(cert.VariableNames[j]))
	}

	return HalfConstraint{Terms: terms, Target: NumberWriter(c.Target), Dir: c.Dir}
}

// CombinationHalf synthesizes the half-space a LIN/RND reason's ordered
// (constraint_index, multiplier) list denotes: per spec.md §4.G, "a is
// Σᵢ dᵢ·cᵢ column-wise; b is Σᵢ dᵢ·targetᵢ; directions eq/geq/leq are
// ⋀ᵢ (dᵢ·s(dirᵢ)) ⟨dir⟩ 0." Every coefficient product is rendered as a
// literal three-factor SMT multiplication (dᵢ, cᵢⱼ, the variable) and every
// target product as a two-factor one (dᵢ, targetᵢ) — dᵢ, cᵢⱼ and targetᵢ
// are all lexical tokens; their product is never computed in Go.
func CombinationHalf(cert *certificate.Certificate, terms []certificate.Term) Half {
	n := cert.NumVariables()

	perVar := make([][]Writer, n)
	var targetParts []Writer

	multipliers := make([]number.Number, len(terms))
	dirs := make([]number.Direction, len(terms))

	for i, t := range terms {
		c := cert.Constraints[t.ConstraintIndex]
		multipliers[i] = t.Multiplier
		dirs[i] = c.Dir

		if t.Multiplier.IsZero() {
			continue
		}

		targetParts = append(targetParts, List("*", NumberWriter(t.Multiplier), NumberWriter(c.Target)))

		for j, coef := range c.Coefficients {
			if coef.IsZero() {
				continue
			}

			perVar[j] = append(perVar[j], List("*", NumberWriter(t.Multiplier), NumberWriter(coef), VarWriter(cert.VariableNames[j])))
		}
	}

	combinedTerms := make([]Term, n)
	for j := 0; j < n; j++ {
		if len(perVar[j]) == 0 {
			combinedTerms[j] = Term{KnownZero: true, Expr: Sym("0")}
			continue
		}

		combinedTerms[j] = Term{KnownZero: false, Expr: Sum(perVar[j]...)}
	}

	eq, geq, leq := combinationDirectionFlags(multipliers, dirs)

	return Half{Terms: combinedTerms, Target: Sum(targetParts...), Eq: eq, Geq: geq, Leq: leq}
}

// rndPart2 is the DOM-like disjunction spec.md §4.G specializes for
// rounding: either the combination is identically zero and is itself
// infeasible by sign, or the coefficients agree and the rounded bound
// respects the combination's ceiling or floor according to the current
// constraint's sign.
func rndPart2(combination Half, current HalfConstraint) Writer {
	branch1 := And(
		allZeroExpr(combination.Terms),
		Ite(combination.Geq, List(">", combination.Target, Sym("0")),
			Ite(combination.Leq, List("<", combination.Target, Sym("0")), False)),
	)

	upBranch := And(List(">=", CeilWriter(combination.Target), current.Target), combination.Geq)
	downBranch := And(List("<=", FloorWriter(combination.Target), current.Target), combination.Leq)

	branch2 := And(
		equalTermsExpr(combination.Terms, current.Terms),
		Ite(Bool(current.Dir.SignCode() == 1), upBranch, downBranch),
	)

	return Or(branch1, branch2)
}

// solutionObjectiveHalf evaluates the objective at a claimed solution,
// building the half-space spec.md §4.G's SOL case calls "obj·s": the
// objective's own coefficients (so DOM's branch2 coefficient check lines
// up against a SOL-derived constraint, which is itself objective-shaped)
// and a target equal to the objective's literal value at s, rendered as a
// sum of literal products rather than computed.
func solutionObjectiveHalf(cert *certificate.Certificate, sol certificate.Solution, minimization bool) Half {
	n := cert.NumVariables()

	terms := make([]Term, n)
	for j, coef := range cert.Objective {
		terms[j] = SimpleTerm(coef, VarWriter(cert.VariableNames[j]))
	}

	target := evaluatedObjectiveValue(cert, sol)

	if minimization {
		return Half{Terms: terms, Target: target, Eq: False, Geq: False, Leq: True}
	}

	return Half{Terms: terms, Target: target, Eq: False, Geq: True, Leq: False}
}

// DerivationBody builds the boolean body of the single `(assert ...)`
// spec.md §4.G's "Per-derivation emission" writes for derivation der,
// dispatching on its reason type.
func DerivationBody(cert *certificate.Certificate, der certificate.Derivation) Writer {
	k := der.ConstraintIndex
	reason := der.Reason
	current := cert.Constraints[k]
	currentHalf := ConstraintHalf(cert, current)
	currentHC := ConstraintHalfConstraint(cert, current)

	asm := ASM(cert, k, reason)

	switch reason.Type {
	case certificate.ReasonASM:
		return asm

	case certificate.ReasonLIN:
		refs := termIndices(reason.Terms)
		combination := CombinationHalf(cert, reason.Terms)

		return And(asm, PRV(refs, k), DOM(combination, currentHalf))

	case certificate.ReasonRND:
		refs := termIndices(reason.Terms)
		combination := CombinationHalf(cert, reason.Terms)

		return And(
			asm,
			PRV(refs, k),
			RND(combination.Terms, cert.IntegralIndices, cert.NonIntegralIndices, Not(combination.Eq)),
			Bool(current.Dir.SignCode() != 0),
			rndPart2(combination, currentHC),
		)

	case certificate.ReasonUNS:
		leftHalf := ConstraintHalf(cert, cert.Constraints[reason.I1])
		rightHalf := ConstraintHalf(cert, cert.Constraints[reason.I2])
		leftHC := ConstraintHalfConstraint(cert, cert.Constraints[reason.L1])
		rightHC := ConstraintHalfConstraint(cert, cert.Constraints[reason.L2])

		return And(
			asm,
			Bool(k > reason.I1),
			Bool(k > reason.I2),
			DOM(leftHalf, currentHalf),
			DOM(rightHalf, currentHalf),
			Bool(membership(cert, reason.I1, reason.L1)),
			Bool(membership(cert, reason.I2, reason.L2)),
			DIS(leftHC, rightHC, cert.IntegralIndices, cert.NonIntegralIndices),
		)

	case certificate.ReasonSOL:
		var disjuncts []Writer

		for _, sol := range cert.Solutions {
			objHalf := solutionObjectiveHalf(cert, sol, cert.Minimization)
			disjuncts = append(disjuncts, DOM(objHalf, currentHalf))
		}

		return And(asm, Or(disjuncts...))

	default:
		return asm
	}
}
