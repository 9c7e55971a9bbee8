package smt

import (
	"fmt"
	"io"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
)

// WriteDerivationRange writes one self-contained SMT-LIB file to w:
// header, one `(assert ...)` per derivation in [start, end) (indices into
// cert.Derivations, not the flat constraint sequence), footer. Used for a
// block writer's per-block files; the single-file configuration uses
// WriteSingleFile instead.
func WriteDerivationRange(w io.Writer, cert *certificate.Certificate, start, end int) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("smt: write header: %w", err)
	}

	for i := start; i < end; i++ {
		der := cert.Derivations[i]

		if err := WriteAssert(w, DerivationBody(cert, der)); err != nil {
			return fmt.Errorf("smt: derivation %d: %w", der.ConstraintIndex, err)
		}
	}

	if err := WriteFooter(w); err != nil {
		return fmt.Errorf("smt: write footer: %w", err)
	}

	return nil
}

// WriteSolutionFile writes the top-level SOL block as a self-contained
// file: header, one assertion, footer.
func WriteSolutionFile(w io.Writer, cert *certificate.Certificate) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("smt: write header: %w", err)
	}

	if err := WriteAssert(w, TopLevelSOL(cert)); err != nil {
		return fmt.Errorf("smt: sol block: %w", err)
	}

	return WriteFooter(w)
}

// WriteSolutionCheckFile writes the terminal DER solution-check block as
// a self-contained file: header, one assertion, footer.
func WriteSolutionCheckFile(w io.Writer, cert *certificate.Certificate) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("smt: write header: %w", err)
	}

	if err := WriteAssert(w, TerminalBlock(cert)); err != nil {
		return fmt.Errorf("smt: solcheck block: %w", err)
	}

	return WriteFooter(w)
}

// WriteSingleFile writes the entire certificate's emission — every
// derivation's assertion followed by the SOL block and the terminal
// solution check — into one sink, for the non-parallel configuration
// spec.md §4.H calls "single-file mode."
func WriteSingleFile(w io.Writer, cert *certificate.Certificate) error {
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("smt: write header: %w", err)
	}

	for _, der := range cert.Derivations {
		if err := WriteAssert(w, DerivationBody(cert, der)); err != nil {
			return fmt.Errorf("smt: derivation %d: %w", der.ConstraintIndex, err)
		}
	}

	if err := WriteAssert(w, TopLevelSOL(cert)); err != nil {
		return fmt.Errorf("smt: sol block: %w", err)
	}

	if err := WriteAssert(w, TerminalBlock(cert)); err != nil {
		return fmt.Errorf("smt: solcheck block: %w", err)
	}

	return WriteFooter(w)
}
