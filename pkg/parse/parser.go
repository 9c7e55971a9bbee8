// Package parse implements the VIPR certificate grammar of spec.md §4.D: a
// top-level loop that reads a leading section token and dispatches to a
// section-specific reader. Sections are self-delimiting by a leading count
// and may appear in any order.
package parse

import (
	"io"
	"strconv"

	"github.com/vipr-check/vipr-smt/pkg/arena"
	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/lex"
	"github.com/vipr-check/vipr-smt/pkg/number"
)

// Parser consumes a VIPR certificate's token stream and builds a
// certificate.Certificate. It does not run the pkg/deps precomputation;
// callers invoke that separately once parsing succeeds.
type Parser struct {
	r     *lex.Reader
	arena *arena.Arena
	cert  *certificate.Certificate
}

// NewParser constructs a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		r:     lex.NewReader(r),
		arena: arena.New(),
		cert:  &certificate.Certificate{},
	}
}

// Parse consumes the entire input, returning the populated certificate or
// the first error encountered (a *Error for grammar problems).
func (p *Parser) Parse() (*certificate.Certificate, error) {
	for {
		tok, ok := p.r.NextToken()
		if !ok {
			break
		}

		var err error

		switch string(tok) {
		case "VAR":
			err = p.parseVAR()
		case "INT":
			err = p.parseINT()
		case "OBJ":
			err = p.parseOBJ()
		case "CON":
			err = p.parseCON()
		case "RTP":
			err = p.parseRTP()
		case "SOL":
			err = p.parseSOL()
		case "DER":
			err = p.parseDER()
		default:
			err = p.errf("unknown section %q", tok)
		}

		if err != nil {
			return nil, err
		}
	}

	return p.cert, nil
}

func (p *Parser) errf(format string, args ...any) error {
	return NewError(p.r.Line(), format, args...)
}

func (p *Parser) nextToken() (string, error) {
	tok, ok := p.r.NextToken()
	if !ok {
		return "", p.errf("unexpected end of input")
	}

	return string(tok), nil
}

func (p *Parser) nextUint() (uint, error) {
	tok, err := p.nextToken()
	if err != nil {
		return 0, err
	}

	v, cerr := strconv.ParseUint(tok, 10, 64)
	if cerr != nil {
		return 0, p.errf("expected unsigned integer, got %q: %v", tok, cerr)
	}

	return uint(v), nil
}

func (p *Parser) nextInt64() (int64, error) {
	tok, err := p.nextToken()
	if err != nil {
		return 0, err
	}

	v, cerr := strconv.ParseInt(tok, 10, 64)
	if cerr != nil {
		return 0, p.errf("expected signed integer, got %q: %v", tok, cerr)
	}

	return v, nil
}

// nextNumber reads a coefficient/target token: either a signed decimal
// integer, or "num/den". Infinity tokens are not accepted here; only
// parseRTPBound accepts them.
func (p *Parser) nextNumber() (number.Number, error) {
	tok, err := p.nextToken()
	if err != nil {
		return number.Number{}, err
	}

	return p.numberFromToken(tok)
}

func (p *Parser) numberFromToken(tok string) (number.Number, error) {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '/' {
			numTok, denTok := tok[:i], tok[i+1:]
			if !isIntegerToken(numTok) || !isIntegerToken(denTok) {
				return number.Number{}, p.errf("malformed fraction %q", tok)
			}

			if denTok == "0" {
				return number.Number{}, p.errf("fraction %q has zero denominator", tok)
			}

			return number.NewFraction(p.arena.InternString(numTok), p.arena.InternString(denTok)), nil
		}
	}

	if !isIntegerToken(tok) {
		return number.Number{}, p.errf("malformed integer %q", tok)
	}

	return number.NewInteger(p.arena.InternString(tok)), nil
}

// parseRTPBound accepts everything nextNumber does, plus "inf"/"-inf".
func (p *Parser) parseRTPBound() (number.Number, error) {
	tok, err := p.nextToken()
	if err != nil {
		return number.Number{}, err
	}

	switch tok {
	case "inf":
		return number.PosInf(), nil
	case "-inf":
		return number.NegInf(), nil
	default:
		return p.numberFromToken(tok)
	}
}

func isIntegerToken(tok string) bool {
	if tok == "" {
		return false
	}

	i := 0
	if tok[0] == '-' {
		i = 1
	}

	if i == len(tok) {
		return false
	}

	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}

	return true
}

func (p *Parser) parseVAR() error {
	n, err := p.nextUint()
	if err != nil {
		return err
	}

	names := make([]string, n)

	for i := uint(0); i < n; i++ {
		tok, err := p.nextToken()
		if err != nil {
			return err
		}

		names[i] = string(p.arena.InternString(tok))
	}

	p.cert.VariableNames = names
	p.cert.Integral = make([]bool, n)

	if p.cert.Objective == nil {
		p.cert.Objective = make([]number.Number, n)
		for i := range p.cert.Objective {
			p.cert.Objective[i] = number.NewInteger([]byte("0"))
		}
	}

	return nil
}

func (p *Parser) parseINT() error {
	m, err := p.nextUint()
	if err != nil {
		return err
	}

	for i := uint(0); i < m; i++ {
		idx, err := p.nextUint()
		if err != nil {
			return err
		}

		if int(idx) >= len(p.cert.Integral) {
			return p.errf("INT section references out-of-range variable index %d", idx)
		}

		p.cert.Integral[idx] = true
	}

	return nil
}

func (p *Parser) parseOBJ() error {
	dirTok, err := p.nextToken()
	if err != nil {
		return err
	}

	switch dirTok {
	case "min":
		p.cert.Minimization = true
	case "max":
		p.cert.Minimization = false
	default:
		return p.errf("expected min or max, got %q", dirTok)
	}

	k, err := p.nextUint()
	if err != nil {
		return err
	}

	n := len(p.cert.VariableNames)
	if p.cert.Objective == nil {
		p.cert.Objective = make([]number.Number, n)
	}

	zero := number.NewInteger([]byte("0"))
	for i := range p.cert.Objective {
		p.cert.Objective[i] = zero
	}

	for i := uint(0); i < k; i++ {
		idx, err := p.nextUint()
		if err != nil {
			return err
		}

		coef, err := p.nextNumber()
		if err != nil {
			return err
		}

		if int(idx) >= n {
			return p.errf("OBJ section references out-of-range variable index %d", idx)
		}

		p.cert.Objective[idx] = coef
	}

	return nil
}

// parseConstraintHeader reads "name (E|L|G) target (OBJ | k idx1 coef1 ...)"
// — the shape shared by CON entries and DER entries' leading constraint.
func (p *Parser) parseConstraintHeader() (certificate.Constraint, error) {
	name, err := p.nextToken()
	if err != nil {
		return certificate.Constraint{}, err
	}

	dirTok, err := p.nextToken()
	if err != nil {
		return certificate.Constraint{}, err
	}

	dir, ok := number.ParseDirection(dirTok)
	if !ok {
		return certificate.Constraint{}, p.errf("unknown direction %q", dirTok)
	}

	target, err := p.nextNumber()
	if err != nil {
		return certificate.Constraint{}, err
	}

	n := len(p.cert.VariableNames)
	coefs := make([]number.Number, n)

	zero := number.NewInteger([]byte("0"))
	for i := range coefs {
		coefs[i] = zero
	}

	tok, err := p.nextToken()
	if err != nil {
		return certificate.Constraint{}, err
	}

	if tok == "OBJ" {
		copy(coefs, p.cert.Objective)
	} else {
		k, cerr := strconv.ParseUint(tok, 10, 64)
		if cerr != nil {
			return certificate.Constraint{}, p.errf("expected OBJ or sparse coefficient count, got %q", tok)
		}

		for i := uint64(0); i < k; i++ {
			idx, err := p.nextUint()
			if err != nil {
				return certificate.Constraint{}, err
			}

			coef, err := p.nextNumber()
			if err != nil {
				return certificate.Constraint{}, err
			}

			if int(idx) >= n {
				return certificate.Constraint{}, p.errf("constraint %q references out-of-range variable index %d", name, idx)
			}

			coefs[idx] = coef
		}
	}

	return certificate.Constraint{
		Name:         string(p.arena.InternString(name)),
		Coefficients: coefs,
		Dir:          dir,
		Target:       target,
	}, nil
}

func (p *Parser) parseCON() error {
	numConstraints, err := p.nextUint()
	if err != nil {
		return err
	}
	// B (bound-constraint count) is read and ignored per spec.md §4.D.
	if _, err := p.nextUint(); err != nil {
		return err
	}

	for i := uint(0); i < numConstraints; i++ {
		c, err := p.parseConstraintHeader()
		if err != nil {
			return err
		}

		p.cert.Constraints = append(p.cert.Constraints, c)
	}

	p.cert.NumProblem = uint(len(p.cert.Constraints))

	return nil
}

func (p *Parser) parseRTP() error {
	tag, err := p.nextToken()
	if err != nil {
		return err
	}

	switch tag {
	case "infeas":
		p.cert.Feasible = false
		p.cert.FeasibleLower = number.NegInf()
		p.cert.FeasibleUpper = number.PosInf()
	case "range":
		p.cert.Feasible = true

		lb, err := p.parseRTPBound()
		if err != nil {
			return err
		}

		ub, err := p.parseRTPBound()
		if err != nil {
			return err
		}

		p.cert.FeasibleLower = lb
		p.cert.FeasibleUpper = ub
	default:
		return p.errf("unrecognized RTP verdict tag %q (expected infeas or range)", tag)
	}

	return nil
}

func (p *Parser) parseSOL() error {
	s, err := p.nextUint()
	if err != nil {
		return err
	}

	n := len(p.cert.VariableNames)
	sols := make([]certificate.Solution, s)

	for i := uint(0); i < s; i++ {
		name, err := p.nextToken()
		if err != nil {
			return err
		}

		k, err := p.nextUint()
		if err != nil {
			return err
		}

		values := make([]number.Number, n)

		zero := number.NewInteger([]byte("0"))
		for j := range values {
			values[j] = zero
		}

		for j := uint(0); j < k; j++ {
			idx, err := p.nextUint()
			if err != nil {
				return err
			}

			val, err := p.nextNumber()
			if err != nil {
				return err
			}

			if int(idx) >= n {
				return p.errf("solution %q references out-of-range variable index %d", name, idx)
			}

			values[idx] = val
		}

		sols[i] = certificate.Solution{Name: string(p.arena.InternString(name)), Values: values}
	}

	p.cert.Solutions = sols

	return nil
}

func (p *Parser) parseDER() error {
	d, err := p.nextUint()
	if err != nil {
		return err
	}

	for i := uint(0); i < d; i++ {
		c, err := p.parseConstraintHeader()
		if err != nil {
			return err
		}

		open, err := p.nextToken()
		if err != nil {
			return err
		}

		if open != "{" {
			return p.errf("expected '{' to open reason body, got %q", open)
		}

		reason, err := p.parseReason()
		if err != nil {
			return err
		}

		closeTok, err := p.nextToken()
		if err != nil {
			return err
		}

		if closeTok != "}" {
			return p.errf("expected '}' to close reason body, got %q", closeTok)
		}

		largest, err := p.nextInt64()
		if err != nil {
			return err
		}

		idx := uint(len(p.cert.Constraints))
		p.cert.Constraints = append(p.cert.Constraints, c)
		p.cert.Derivations = append(p.cert.Derivations, certificate.Derivation{
			ConstraintIndex: idx,
			Reason:          reason,
			LargestIndex:    largest,
		})
	}

	return nil
}

func (p *Parser) parseReason() (certificate.Reason, error) {
	kind, err := p.nextToken()
	if err != nil {
		return certificate.Reason{}, err
	}

	switch kind {
	case "asm":
		return certificate.Reason{Type: certificate.ReasonASM}, nil
	case "sol":
		return certificate.Reason{Type: certificate.ReasonSOL}, nil
	case "lin", "rnd":
		terms, err := p.parseTerms()
		if err != nil {
			return certificate.Reason{}, err
		}

		rt := certificate.ReasonLIN
		if kind == "rnd" {
			rt = certificate.ReasonRND
		}

		return certificate.Reason{Type: rt, Terms: terms}, nil
	case "uns":
		i1, err := p.nextUint()
		if err != nil {
			return certificate.Reason{}, err
		}

		l1, err := p.nextUint()
		if err != nil {
			return certificate.Reason{}, err
		}

		i2, err := p.nextUint()
		if err != nil {
			return certificate.Reason{}, err
		}

		l2, err := p.nextUint()
		if err != nil {
			return certificate.Reason{}, err
		}

		return certificate.Reason{Type: certificate.ReasonUNS, I1: i1, L1: l1, I2: i2, L2: l2}, nil
	default:
		return certificate.Reason{}, p.errf("unknown reason kind %q", kind)
	}
}

func (p *Parser) parseTerms() ([]certificate.Term, error) {
	k, err := p.nextUint()
	if err != nil {
		return nil, err
	}

	terms := make([]certificate.Term, k)

	for i := uint(0); i < k; i++ {
		idx, err := p.nextUint()
		if err != nil {
			return nil, err
		}

		mult, err := p.nextNumber()
		if err != nil {
			return nil, err
		}

		terms[i] = certificate.Term{ConstraintIndex: idx, Multiplier: mult}
	}

	return terms, nil
}
