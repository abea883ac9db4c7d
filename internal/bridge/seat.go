package bridge

import "fmt"

// Seat represents one of the four table positions. Seats advance in deal
// order North -> East -> South -> West and wrap around.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// Seats returns all four seats in deal order.
func Seats() [4]Seat {
	return [4]Seat{North, East, South, West}
}

// String returns the full seat name
func (s Seat) String() string {
	switch s {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "?"
	}
}

// Letter returns the single-letter seat code used in PBN files and on the wire
func (s Seat) Letter() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// SeatFromLetter parses a single-letter seat code (N/E/S/W)
func SeatFromLetter(letter string) (Seat, error) {
	switch letter {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	default:
		return 0, fmt.Errorf("invalid seat %q", letter)
	}
}

// Next returns the seat to this seat's left, the next to act in an auction
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the seat directly across the table
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// SameSide reports whether two seats belong to the same partnership
// (North-South or East-West).
func (s Seat) SameSide(o Seat) bool {
	return s%2 == o%2
}

// Opponents returns the two seats of the opposing partnership.
func (s Seat) Opponents() [2]Seat {
	return [2]Seat{s.Next(), s.Next().Partner()}
}
