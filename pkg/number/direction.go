package number

// Direction identifies the relational operator used by a constraint's
// target: at-most, exactly, or at-least.
type Direction uint8

const (
	// SmallerEqual is the "<=" direction.
	SmallerEqual Direction = iota
	// Equal is the "=" direction.
	Equal
	// GreaterEqual is the ">=" direction.
	GreaterEqual
)

// SignCode returns the sign code s(d) of this direction: -1 for
// SmallerEqual, 0 for Equal, +1 for GreaterEqual.
func (d Direction) SignCode() int {
	switch d {
	case SmallerEqual:
		return -1
	case GreaterEqual:
		return 1
	default:
		return 0
	}
}

// String renders this direction using the VIPR grammar's single-letter
// tokens (E, L, G), for diagnostics.
func (d Direction) String() string {
	switch d {
	case SmallerEqual:
		return "L"
	case Equal:
		return "E"
	case GreaterEqual:
		return "G"
	default:
		return "?"
	}
}

// ParseDirection converts a VIPR grammar token into a Direction, or reports
// false if the token is not one of E, L, G.
func ParseDirection(token string) (Direction, bool) {
	switch token {
	case "L":
		return SmallerEqual, true
	case "E":
		return Equal, true
	case "G":
		return GreaterEqual, true
	default:
		return 0, false
	}
}
