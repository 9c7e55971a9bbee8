package smt

import (
	"github.com/vipr-check/vipr-smt/pkg/certificate"
)

// PRV asserts that every index a reason references strictly precedes the
// current derivation. By the time a derivation reaches this emitter,
// pkg/deps has already enforced that invariant while building the
// dependency table, so each conjunct here is a literal truth — PRV exists
// to document the invariant in the emitted formula, not to have it
// re-checked by the solver.
func PRV(referenced []uint, current uint) Writer {
	var parts []Writer

	for _, j := range referenced {
		parts = append(parts, Bool(j < current))
	}

	return And(parts...)
}

// membership reports A(i,j): whether j is in i's assumption set. Indices
// below the derived range never carry assumptions (spec.md §3: "A(i,j) is
// false for i < P").
func membership(cert *certificate.Certificate, i, j uint) bool {
	if i < cert.NumProblem {
		return false
	}

	return cert.Deps.Assumptions(i).Contains(j)
}

// ASM asserts the assumption-consistency predicate for derivation k, per
// spec.md §4.G's four reason-typed cases. Every individual A(i,j) value is
// inlined as a literal boolean from the precomputed dependency table
// (spec.md §3: "The predicate's concrete boolean values of A(·,·) are
// inlined from the precomputed dependency table"); the predicate's
// structure — which disjunctions/conjunctions tie them together — is
// still written out verbatim so the emitted formula documents why the
// table has the shape it does.
func ASM(cert *certificate.Certificate, k uint, reason certificate.Reason) Writer {
	asmIndices := asmOnlyIndices(cert)

	switch reason.Type {
	case certificate.ReasonASM:
		var parts []Writer
		parts = append(parts, Bool(membership(cert, k, k)))

		for _, j := range asmIndices {
			if j == k {
				continue
			}

			parts = append(parts, Not(Bool(membership(cert, k, j))))
		}

		return And(parts...)

	case certificate.ReasonLIN, certificate.ReasonRND:
		refs := termIndices(reason.Terms)

		var parts []Writer

		for _, j := range asmIndices {
			if j < k {
				parts = append(parts, List("=", Bool(membership(cert, k, j)), disjunctOverRefs(cert, refs, j, k)))
			} else if j > k {
				parts = append(parts, Not(Bool(membership(cert, k, j))))
			}
		}

		return And(parts...)

	case certificate.ReasonUNS:
		var parts []Writer

		for _, j := range asmIndices {
			if j < k {
				left := And(Bool(membership(cert, reason.I1, j)), Bool(j != reason.L1))
				right := And(Bool(membership(cert, reason.I2, j)), Bool(j != reason.L2))
				parts = append(parts, List("=", Bool(membership(cert, k, j)), Or(left, right)))
			} else if j > k {
				parts = append(parts, Not(Bool(membership(cert, k, j))))
			}
		}

		return And(parts...)

	case certificate.ReasonSOL:
		var parts []Writer

		for _, j := range asmIndices {
			if j < k {
				parts = append(parts, Not(Bool(membership(cert, k, j))))
			} else if j > k {
				parts = append(parts, Not(Bool(membership(cert, k, j))))
			}
		}

		return And(parts...)

	default:
		return True
	}
}

// disjunctOverRefs builds ⋁_{i∈refs, j≤i<k} A(i,j), padded to ≥2 disjuncts
// with false, per the LIN/RND case of spec.md §4.G's ASM predicate.
func disjunctOverRefs(cert *certificate.Certificate, refs []uint, j, k uint) Writer {
	var parts []Writer

	for _, i := range refs {
		if j <= i && i < k {
			parts = append(parts, Bool(membership(cert, i, j)))
		}
	}

	return Or(parts...)
}

func termIndices(terms []certificate.Term) []uint {
	out := make([]uint, len(terms))
	for i, t := range terms {
		out[i] = t.ConstraintIndex
	}

	return out
}

// asmOnlyIndices returns every derived index whose own reason is ASM, in
// ascending order — the index set the ASM predicate quantifies over.
func asmOnlyIndices(cert *certificate.Certificate) []uint {
	var out []uint

	for _, der := range cert.Derivations {
		if der.Reason.Type == certificate.ReasonASM {
			out = append(out, der.ConstraintIndex)
		}
	}

	return out
}
