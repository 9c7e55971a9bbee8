// Package smt is the formula generator: a compositional, streaming emitter
// of prefix-notation SMT-LIB 2.6 text. Per spec.md's Design Notes (§9), a
// sub-emitter is a value — a Writer — that, given a sink, writes directly
// to it; Writers nest arbitrarily and the package never builds an
// intermediate S-expression tree the way pkg/sexp in the teacher repo does.
package smt

import (
	"fmt"
	"io"
)

// Writer is a composable unit of SMT-LIB output. Calling it writes its
// text directly to w and returns the first I/O error encountered, if any.
type Writer func(w io.Writer) error

// Sym emits a bare symbol or literal token verbatim.
func Sym(s string) Writer {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

// True and False are the Bool literals.
var (
	True  = Sym("true")
	False = Sym("false")
)

// Bool returns True or False per b.
func Bool(b bool) Writer {
	if b {
		return True
	}

	return False
}

// List emits a prefix-notation application "(op operand1 operand2 ...)".
// A zero-operand List is legal for ops that don't require a minimum arity;
// see Padded for operators that do.
func List(op string, operands ...Writer) Writer {
	return func(w io.Writer) error {
		if _, err := io.WriteString(w, "("); err != nil {
			return err
		}

		if _, err := io.WriteString(w, op); err != nil {
			return err
		}

		for _, o := range operands {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}

			if err := o(w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, ")")

		return err
	}
}

// Padded emits a List for an operator that requires at least two operands
// (and/or/+ in SMT-LIB), padding with copies of identity until the minimum
// arity is met. Per spec.md §4.G this padding applies in sparse mode, which
// is the only mode this emitter implements.
func Padded(op string, identity Writer, operands []Writer) Writer {
	ops := make([]Writer, len(operands))
	copy(ops, operands)

	for len(ops) < 2 {
		ops = append(ops, identity)
	}

	return List(op, ops...)
}

// And is Padded("and", True, ...).
func And(operands ...Writer) Writer { return Padded("and", True, operands) }

// Or is Padded("or", False, ...).
func Or(operands ...Writer) Writer { return Padded("or", False, operands) }

// Sum is Padded("+", Sym("0"), ...).
func Sum(operands ...Writer) Writer { return Padded("+", Sym("0"), operands) }

// Not emits "(not x)".
func Not(x Writer) Writer { return List("not", x) }

// Distinct emits "(distinct a b)", the inequality operator spec.md §6
// lists alongside the other relational forms.
func Distinct(a, b Writer) Writer { return List("distinct", a, b) }

// Ite emits "(ite t a b)".
func Ite(t, a, b Writer) Writer { return List("ite", t, a, b) }

// Header is the fixed SMT-LIB preamble required by spec.md §6.
const Header = "(set-info :smt-lib-version 2.6)\n" +
	"(set-logic AUFLIRA)\n" +
	"(set-info :source \"Transformed from a VIPR certificate\")\n" +
	"; --- END HEADER --- \n"

// Footer is the fixed SMT-LIB closer required by spec.md §6.
const Footer = "(check-sat)\n"

// WriteHeader emits the fixed header verbatim.
func WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, Header)
	return err
}

// WriteFooter emits the fixed footer verbatim.
func WriteFooter(w io.Writer) error {
	_, err := io.WriteString(w, Footer)
	return err
}

// WriteAssert emits "(assert body)\n" for a top-level assertion.
func WriteAssert(w io.Writer, body Writer) error {
	if err := List("assert", body)(w); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

// Seq runs writers in order, stopping at the first error. It is not itself
// a syntactic form (emits no parens), so it can sequence several top-level
// asserts into one sink.
func Seq(writers ...Writer) Writer {
	return func(w io.Writer) error {
		for _, wr := range writers {
			if err := wr(w); err != nil {
				return fmt.Errorf("smt: %w", err)
			}
		}

		return nil
	}
}
