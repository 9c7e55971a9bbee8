package smt

import (
	"testing"

	"github.com/vipr-check/vipr-smt/pkg/number"
)

func TestNumberWriter_Integer(t *testing.T) {
	cases := []struct {
		tok  string
		want string
	}{
		{"5", "5"},
		{"0", "0"},
		{"-5", "(- 5)"},
		{"-0", "(- 0)"},
	}

	for _, c := range cases {
		got := render(t, NumberWriter(number.NewInteger([]byte(c.tok))))
		if got != c.want {
			t.Errorf("NumberWriter(%q) = %q, want %q", c.tok, got, c.want)
		}
	}
}

func TestNumberWriter_Fraction(t *testing.T) {
	got := render(t, NumberWriter(number.NewFraction([]byte("-3"), []byte("4"))))
	if got != "(/ (- 3) 4)" {
		t.Errorf("got %q", got)
	}
}

func TestSignWriter(t *testing.T) {
	cases := []struct {
		dir  number.Direction
		want string
	}{
		{number.SmallerEqual, "(- 1)"},
		{number.Equal, "0"},
		{number.GreaterEqual, "1"},
	}

	for _, c := range cases {
		if got := render(t, SignWriter(c.dir)); got != c.want {
			t.Errorf("SignWriter(%v) = %q, want %q", c.dir, got, c.want)
		}
	}
}

func TestCeilFloorWriter(t *testing.T) {
	x := Sym("x")

	if got := render(t, FloorWriter(x)); got != "(to_int x)" {
		t.Errorf("FloorWriter = %q", got)
	}

	if got := render(t, CeilWriter(x)); got != "(- (to_int (- x)))" {
		t.Errorf("CeilWriter = %q", got)
	}
}

func TestDirectionFlags_ExactlyOneTrue(t *testing.T) {
	eq, geq, leq := directionFlags(number.Equal)

	if render(t, eq) != "true" || render(t, geq) != "false" || render(t, leq) != "false" {
		t.Errorf("directionFlags(Equal) = (%s, %s, %s)", render(t, eq), render(t, geq), render(t, leq))
	}
}
