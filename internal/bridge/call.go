package bridge

import "fmt"

// Strain represents a contract denomination. The order of the constants is
// the bidding rank: Clubs is lowest and NoTrump highest, so at equal level a
// later strain outbids an earlier one.
type Strain int

const (
	Clubs Strain = iota
	Diamonds
	Hearts
	Spades
	NoTrump
)

// Strains returns all five strains in ascending bidding rank.
func Strains() [5]Strain {
	return [5]Strain{Clubs, Diamonds, Hearts, Spades, NoTrump}
}

// Suits returns the four suits (every strain except NoTrump) in ascending
// bidding rank. Hand holdings are indexed by these.
func Suits() [4]Strain {
	return [4]Strain{Clubs, Diamonds, Hearts, Spades}
}

// Letter returns the wire/PBN strain code: C, D, H, S or N.
func (s Strain) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case NoTrump:
		return "N"
	default:
		return "?"
	}
}

// String returns a display form, "NT" for notrump and a suit symbol otherwise
func (s Strain) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case NoTrump:
		return "NT"
	default:
		return "?"
	}
}

// StrainFromLetter parses a strain code. "NT" is accepted as an alias for
// "N" since PBN optimum tables use it.
func StrainFromLetter(letter string) (Strain, error) {
	switch letter {
	case "C":
		return Clubs, nil
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	case "N", "NT":
		return NoTrump, nil
	default:
		return 0, fmt.Errorf("invalid strain %q", letter)
	}
}

// CallKind discriminates the four kinds of auction call.
type CallKind int

const (
	Pass CallKind = iota
	Double
	Redouble
	Bid
)

// Call is one unit of the auction: Pass, Double, Redouble, or a contract bid
// of a level (1-7) in a strain. The zero value is Pass.
type Call struct {
	Kind   CallKind
	Level  int    // 1-7, contract bids only
	Strain Strain // contract bids only
}

// Convenience values for the three non-contract calls.
var (
	PassCall     = Call{Kind: Pass}
	DoubleCall   = Call{Kind: Double}
	RedoubleCall = Call{Kind: Redouble}
)

// NewBid creates a contract bid call.
func NewBid(level int, strain Strain) Call {
	return Call{Kind: Bid, Level: level, Strain: strain}
}

// IsContract reports whether the call is a contract bid.
func (c Call) IsContract() bool {
	return c.Kind == Bid
}

// Beats reports whether c, a contract bid, strictly outranks o by the
// (level, strain) bidding order. Only meaningful for two contract bids.
func (c Call) Beats(o Call) bool {
	if c.Level != o.Level {
		return c.Level > o.Level
	}
	return c.Strain > o.Strain
}

// String returns the wire encoding: "P", "D", "R" or "<level><strain>",
// e.g. "1N" or "4S".
func (c Call) String() string {
	switch c.Kind {
	case Pass:
		return "P"
	case Double:
		return "D"
	case Redouble:
		return "R"
	case Bid:
		return fmt.Sprintf("%d%s", c.Level, c.Strain.Letter())
	default:
		return "?"
	}
}

// ParseCall parses the wire encoding produced by String.
func ParseCall(s string) (Call, error) {
	switch s {
	case "P":
		return PassCall, nil
	case "D":
		return DoubleCall, nil
	case "R":
		return RedoubleCall, nil
	}
	if len(s) < 2 {
		return Call{}, fmt.Errorf("invalid call %q", s)
	}
	level := int(s[0] - '0')
	if level < 1 || level > 7 {
		return Call{}, fmt.Errorf("invalid bid level in %q", s)
	}
	strain, err := StrainFromLetter(s[1:])
	if err != nil {
		return Call{}, fmt.Errorf("invalid call %q: %w", s, err)
	}
	return NewBid(level, strain), nil
}

// MarshalText encodes the call for JSON payloads and map keys.
func (c Call) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes the wire encoding.
func (c *Call) UnmarshalText(text []byte) error {
	parsed, err := ParseCall(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
