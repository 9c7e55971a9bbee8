package smt

import (
	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/number"
)

// signedTokenWriter emits a single signed decimal token, using unary minus
// for negative values per spec.md §6: "-5" becomes "(- 5)", "5" stays "5".
// "-0" is preserved as a distinct token and likewise becomes "(- 0)" —
// the boundary behavior spec.md §8 calls out explicitly.
func signedTokenWriter(tok []byte) Writer {
	if len(tok) > 0 && tok[0] == '-' {
		return List("-", Sym(string(tok[1:])))
	}

	return Sym(string(tok))
}

// negatedTokenWriter emits the sign-flipped rendering of tok: it swaps
// which branch of signedTokenWriter applies without performing arithmetic.
func negatedTokenWriter(tok []byte) Writer {
	if len(tok) > 0 && tok[0] == '-' {
		return Sym(string(tok[1:]))
	}

	if len(tok) == 0 {
		return Sym("0")
	}

	return List("-", Sym(string(tok)))
}

// NumberWriter emits n as an SMT-LIB numeral, "(- n)", or "(/ num den)".
// Calling this on an infinite Number is a programming error (infinities
// appear only in RTP bounds, which are consumed by Go-level branches, never
// emitted directly — see pkg/smt/solution.go).
func NumberWriter(n number.Number) Writer {
	switch n.Kind() {
	case number.Fraction:
		return List("/", signedTokenWriter(n.Numerator()), signedTokenWriter(n.Denominator()))
	default:
		return signedTokenWriter(n.Numerator())
	}
}

// signedMultiplier renders d with its sign flipped according to code (the
// sign code of some Direction): code==0 collapses to the literal 0 (since
// multiplying by a zero sign code is the only case requiring no emitted
// sign at all), code==1 leaves d untouched, code==-1 flips it. This is a
// bookkeeping sign adjustment, never a numeric multiplication.
func signedMultiplier(d number.Number, code int) Writer {
	switch code {
	case 0:
		return Sym("0")
	case -1:
		return negatedTokenWriter(normalizedNumerator(d))
	default:
		return signedTokenWriter(normalizedNumerator(d))
	}
}

// normalizedNumerator returns the token to apply sign logic to. pkg/parse
// accepts both integer and "num/den" multipliers; for a Fraction this
// returns the numerator token alone, which carries the fraction's sign
// only when the denominator is positive. A negative denominator is not
// taken into account.
func normalizedNumerator(d number.Number) []byte {
	return d.Numerator()
}

// SignWriter emits s(d): "(- 1)", "0", or "1".
func SignWriter(d number.Direction) Writer {
	switch d.SignCode() {
	case -1:
		return List("-", Sym("1"))
	case 1:
		return Sym("1")
	default:
		return Sym("0")
	}
}

// CeilWriter emits ceil(x) = (- (to_int (- x))).
func CeilWriter(x Writer) Writer {
	return List("-", List("to_int", List("-", x)))
}

// FloorWriter emits floor(x) = (to_int x).
func FloorWriter(x Writer) Writer {
	return List("to_int", x)
}

// dirOp maps a Direction to its SMT-LIB relational operator.
func dirOp(d number.Direction) string {
	switch d {
	case number.SmallerEqual:
		return "<="
	case number.GreaterEqual:
		return ">="
	default:
		return "="
	}
}

// directionFlags returns three mutually-exclusive boolean Writers encoding
// a concretely-known Direction: exactly one is True, the other two False.
// Used whenever a half-space's direction is already a parsed Go value
// (every constraint read from the certificate), as opposed to one derived
// from a LIN/RND combination (see combinationDirectionFlags).
func directionFlags(d number.Direction) (eq, geq, leq Writer) {
	return Bool(d == number.Equal), Bool(d == number.GreaterEqual), Bool(d == number.SmallerEqual)
}

// VarWriter emits a decision variable's SMT symbol by name.
func VarWriter(name string) Writer { return Sym(name) }

// ConstraintVars builds the per-variable Writer slice for a constraint's
// coefficient/variable terms, referencing the certificate's variable
// symbols directly.
func ConstraintVars(cert *certificate.Certificate) []Writer {
	vars := make([]Writer, cert.NumVariables())
	for i, name := range cert.VariableNames {
		vars[i] = VarWriter(name)
	}

	return vars
}
