// Package deps builds the dependency table A(k) for every derived
// constraint in a certificate: the transitive set of ASM-typed derivations
// that k relies on. It also performs the other precomputation spec.md
// §4.E calls for (the integral/non-integral variable partitions and the
// strict-less-than ordering check on reason indices).
package deps

import (
	"fmt"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/util/collection/bit"
)

// Table is the concrete certificate.DependencyTable: a dense array of
// bitsets, one per derived index, keyed on [P, P+D).
type Table struct {
	base uint // P: the first derived index
	sets []bit.Set
}

// Assumptions implements certificate.DependencyTable.
func (t *Table) Assumptions(k uint) certificate.AssumptionSet {
	if k < t.base || k-t.base >= uint(len(t.sets)) {
		return &bit.Set{}
	}

	return &t.sets[k-t.base]
}

// Build computes the dependency table for cert and the integral/
// non-integral variable index partitions, then installs both on cert.
// Derivations must be iterated in ascending constraint-index order; this
// is also where the strict "referenced index < current index" invariant
// (spec.md §3, §4.E) is enforced.
func Build(cert *certificate.Certificate) error {
	partitionVariables(cert)

	P := cert.NumProblem
	D := cert.NumDerived()
	table := &Table{base: P, sets: make([]bit.Set, D)}

	for i, der := range cert.Derivations {
		k := der.ConstraintIndex
		if k != P+uint(i) {
			return fmt.Errorf("derivation %d: constraint index %d does not match its position (expected %d)",
				i, k, P+uint(i))
		}

		set, err := assumptionsFor(cert, table, k, der.Reason)
		if err != nil {
			return err
		}

		table.sets[i] = set
	}

	cert.Deps = table

	return nil
}

// singleton builds the one-element bitset {val}, the operand Difference
// needs to erase a single index from a set (A(i)∖{l}, spec.md §3).
func singleton(val uint) bit.Set {
	var s bit.Set
	s.Insert(val)

	return s
}

func partitionVariables(cert *certificate.Certificate) {
	cert.IntegralIndices = cert.IntegralIndices[:0]
	cert.NonIntegralIndices = cert.NonIntegralIndices[:0]

	for idx, isInt := range cert.Integral {
		if isInt {
			cert.IntegralIndices = append(cert.IntegralIndices, uint(idx))
		} else {
			cert.NonIntegralIndices = append(cert.NonIntegralIndices, uint(idx))
		}
	}
}

// assumptionsFor computes A(k) per the spec.md §3 rules, validating along
// the way that every referenced index is strictly less than k.
func assumptionsFor(
	cert *certificate.Certificate,
	table *Table,
	k uint,
	reason certificate.Reason,
) (bit.Set, error) {
	var out bit.Set

	switch reason.Type {
	case certificate.ReasonASM:
		out.Insert(k)

	case certificate.ReasonLIN, certificate.ReasonRND:
		for _, term := range reason.Terms {
			if err := checkPrecedes(term.ConstraintIndex, k); err != nil {
				return out, err
			}

			if term.ConstraintIndex >= cert.NumProblem {
				union(&out, table, term.ConstraintIndex)
			}
		}

	case certificate.ReasonUNS:
		for _, idx := range []uint{reason.I1, reason.L1, reason.I2, reason.L2} {
			if err := checkPrecedes(idx, k); err != nil {
				return out, err
			}
		}

		var left, right bit.Set
		if reason.I1 >= cert.NumProblem {
			left = lookup(table, reason.I1)
		}

		if reason.I2 >= cert.NumProblem {
			right = lookup(table, reason.I2)
		}
		left.Difference(singleton(reason.L1))

		// Quirk (spec.md §3, §9): if L2 is present in the first set's chain
		// after L1 has been erased from it (i.e. derived from I1's side
		// too), it is NOT removed from the union even though the rule names
		// it for removal from the second set. Preserved verbatim, not
		// "fixed".
		if !left.Contains(reason.L2) {
			right.Difference(singleton(reason.L2))
		}

		out = left
		out.Union(right)

	case certificate.ReasonSOL:
		// A(k) = empty set.
	}

	return out, nil
}

func checkPrecedes(referenced, current uint) error {
	if referenced >= current {
		return fmt.Errorf("derivation %d references constraint %d, which does not strictly precede it",
			current, referenced)
	}

	return nil
}

func lookup(table *Table, idx uint) bit.Set {
	if idx < table.base {
		return bit.Set{}
	}

	return table.sets[idx-table.base].Clone()
}

func union(out *bit.Set, table *Table, idx uint) {
	s := lookup(table, idx)
	out.Union(s)
}
