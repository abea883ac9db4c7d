package bridge

import "fmt"

// Vulnerability is the scoring condition attached to a board.
type Vulnerability int

const (
	VulnNone Vulnerability = iota
	VulnNS
	VulnEW
	VulnBoth
)

// String returns the display form used by deal files.
func (v Vulnerability) String() string {
	switch v {
	case VulnNone:
		return "None"
	case VulnNS:
		return "NS"
	case VulnEW:
		return "EW"
	case VulnBoth:
		return "All"
	default:
		return "?"
	}
}

// VulnerabilityFromToken parses a PBN vulnerability token.
func VulnerabilityFromToken(token string) (Vulnerability, error) {
	switch token {
	case "None", "-":
		return VulnNone, nil
	case "NS":
		return VulnNS, nil
	case "EW":
		return VulnEW, nil
	case "All", "Both":
		return VulnBoth, nil
	default:
		return 0, fmt.Errorf("invalid vulnerability %q", token)
	}
}

// DoubleDummyTable holds precomputed optimal-play trick counts per declarer
// and strain. Entries a deal file did not supply are absent.
type DoubleDummyTable struct {
	tricks [4][5]int8
	known  [4][5]bool
}

// Set records the trick count for a declarer/strain pair.
func (t *DoubleDummyTable) Set(declarer Seat, strain Strain, tricks int) {
	t.tricks[declarer][strain] = int8(tricks)
	t.known[declarer][strain] = true
}

// Tricks returns the trick count for a declarer/strain pair, if present.
func (t *DoubleDummyTable) Tricks(declarer Seat, strain Strain) (int, bool) {
	if t == nil || !t.known[declarer][strain] {
		return 0, false
	}
	return int(t.tricks[declarer][strain]), true
}

// Board is one pre-dealt deal: four hands, the dealer, the vulnerability and
// optional par/double-dummy data carried along for post-auction display.
// Boards are built once at load time and never mutated.
type Board struct {
	Label         string
	Dealer        Seat
	Vulnerability Vulnerability
	Hands         [4]Hand // indexed by Seat

	ParContract string
	ParScore    string
	DoubleDummy *DoubleDummyTable
}

// Hand returns the holding dealt to a seat.
func (b Board) Hand(seat Seat) Hand {
	return b.Hands[seat]
}
