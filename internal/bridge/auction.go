package bridge

import "errors"

// Errors returned by Auction.Submit.
var (
	ErrNotYourTurn   = errors.New("not this seat's turn")
	ErrAuctionClosed = errors.New("auction is closed")
	ErrIllegalCall   = errors.New("illegal call")
)

// Auction is the bidding state machine for one board. Calls start at the
// dealer and advance one seat per call, so the seat that made the i-th call
// is always dealer+i mod 4. The auction closes once it holds at least four
// calls and the last three are passes.
type Auction struct {
	dealer Seat
	calls  []Call
	closed bool
}

// NewAuction creates an empty auction with the given dealer to act first.
func NewAuction(dealer Seat) *Auction {
	return &Auction{dealer: dealer}
}

// Dealer returns the seat that acts first.
func (a *Auction) Dealer() Seat {
	return a.dealer
}

// Len returns the number of calls made so far.
func (a *Auction) Len() int {
	return len(a.calls)
}

// Calls returns a copy of the call sequence.
func (a *Auction) Calls() []Call {
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// SeatAt returns the seat that made the i-th call.
func (a *Auction) SeatAt(i int) Seat {
	return (a.dealer + Seat(i)) % 4
}

// SeatToAct returns the seat due to call next. Undefined once the auction
// is closed.
func (a *Auction) SeatToAct() Seat {
	return a.SeatAt(len(a.calls))
}

// Closed reports whether the auction has ended.
func (a *Auction) Closed() bool {
	return a.closed
}

// Submit validates and applies a call for a seat. It returns ErrNotYourTurn
// if the seat is not due to act, ErrAuctionClosed once bidding has ended,
// and ErrIllegalCall for a call the auction state does not permit.
func (a *Auction) Submit(seat Seat, call Call) error {
	if a.closed {
		return ErrAuctionClosed
	}
	if seat != a.SeatToAct() {
		return ErrNotYourTurn
	}
	if !a.legal(seat, call) {
		return ErrIllegalCall
	}
	a.calls = append(a.calls, call)
	a.closed = a.complete()
	return nil
}

// Legal reports whether a call would be accepted for the seat to act.
func (a *Auction) Legal(call Call) bool {
	if a.closed {
		return false
	}
	return a.legal(a.SeatToAct(), call)
}

func (a *Auction) legal(seat Seat, call Call) bool {
	switch call.Kind {
	case Pass:
		return true
	case Bid:
		last, _, ok := a.LastContract()
		return !ok || call.Beats(last)
	case Double:
		// The most recent call other than trailing passes must be an
		// opposing contract bid. A standing double or redouble blocks it.
		for i := len(a.calls) - 1; i >= 0; i-- {
			c := a.calls[i]
			if c.Kind == Pass {
				continue
			}
			return c.Kind == Bid && !seat.SameSide(a.SeatAt(i))
		}
		return false
	case Redouble:
		// Only directly over an opposing double, no passes in between.
		n := len(a.calls)
		if n == 0 {
			return false
		}
		return a.calls[n-1].Kind == Double && !seat.SameSide(a.SeatAt(n-1))
	default:
		return false
	}
}

func (a *Auction) complete() bool {
	n := len(a.calls)
	if n < 4 {
		return false
	}
	for _, c := range a.calls[n-3:] {
		if c.Kind != Pass {
			return false
		}
	}
	return true
}

// LastContract returns the most recent contract bid and the seat that made
// it. ok is false if no contract has been bid.
func (a *Auction) LastContract() (call Call, seat Seat, ok bool) {
	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.calls[i].IsContract() {
			return a.calls[i], a.SeatAt(i), true
		}
	}
	return Call{}, 0, false
}

// FinalContract returns the standing contract of a closed auction. ok is
// false for a passed-out board.
func (a *Auction) FinalContract() (Call, bool) {
	call, _, ok := a.LastContract()
	return call, ok
}

// Declarer resolves the declarer of the final contract: the member of the
// contract-winning partnership who bid the contract's strain first, at any
// level, not necessarily whoever bid the final level. Falls back to the
// seat of the final contract bid if no earlier strain bid is found.
func (a *Auction) Declarer() (Seat, bool) {
	contract, winner, ok := a.LastContract()
	if !ok {
		return 0, false
	}
	for i, c := range a.calls {
		seat := a.SeatAt(i)
		if c.IsContract() && c.Strain == contract.Strain && seat.SameSide(winner) {
			return seat, true
		}
	}
	return winner, true
}

// LastCallBy returns a seat's most recent call. ok is false if the seat has
// not called yet.
func (a *Auction) LastCallBy(seat Seat) (Call, bool) {
	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.SeatAt(i) == seat {
			return a.calls[i], true
		}
	}
	return Call{}, false
}

// HasBidNonPass reports whether a seat has made any call other than Pass.
func (a *Auction) HasBidNonPass(seat Seat) bool {
	for i, c := range a.calls {
		if a.SeatAt(i) == seat && c.Kind != Pass {
			return true
		}
	}
	return false
}
