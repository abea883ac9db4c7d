package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play submits a sequence of encoded calls starting at the dealer, failing
// the test if any call is rejected.
func play(t *testing.T, dealer Seat, calls ...string) *Auction {
	t.Helper()
	a := NewAuction(dealer)
	for _, s := range calls {
		call, err := ParseCall(s)
		require.NoError(t, err)
		require.NoError(t, a.Submit(a.SeatToAct(), call), "call %s", s)
	}
	return a
}

func TestSeatToActFollowsDealer(t *testing.T) {
	for _, dealer := range Seats() {
		a := NewAuction(dealer)
		for i := 0; i < 8; i++ {
			want := (dealer + Seat(i)) % 4
			assert.Equal(t, want, a.SeatToAct(), "dealer %s call %d", dealer, i)
			call := PassCall
			if i%2 == 0 {
				call = NewBid(i/2+1, Clubs)
			}
			require.NoError(t, a.Submit(a.SeatToAct(), call))
		}
	}
}

func TestPassedOut(t *testing.T) {
	a := play(t, North, "P", "P", "P", "P")
	assert.True(t, a.Closed())
	_, ok := a.FinalContract()
	assert.False(t, ok, "passed-out auction has no contract")
	_, ok = a.Declarer()
	assert.False(t, ok)
}

func TestThreePassesAfterBidCloseAuction(t *testing.T) {
	a := play(t, North, "1C", "P", "P", "P")
	assert.True(t, a.Closed())

	contract, ok := a.FinalContract()
	require.True(t, ok)
	assert.Equal(t, NewBid(1, Clubs), contract)

	declarer, ok := a.Declarer()
	require.True(t, ok)
	assert.Equal(t, North, declarer)
}

func TestThreePassesAtStartDoNotClose(t *testing.T) {
	a := play(t, North, "P", "P", "P")
	assert.False(t, a.Closed())
	require.NoError(t, a.Submit(West, NewBid(1, Hearts)))
	assert.False(t, a.Closed())
}

func TestSubmitTurnOrder(t *testing.T) {
	a := NewAuction(South)
	err := a.Submit(North, PassCall)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, 0, a.Len(), "rejected call must not be recorded")

	require.NoError(t, a.Submit(South, PassCall))
	assert.Equal(t, West, a.SeatToAct())
}

func TestSubmitAfterClose(t *testing.T) {
	a := play(t, North, "P", "P", "P", "P")
	err := a.Submit(a.SeatToAct(), PassCall)
	assert.ErrorIs(t, err, ErrAuctionClosed)
}

func TestContractMustOutrankStanding(t *testing.T) {
	tests := []struct {
		name  string
		bid   string
		legal bool
	}{
		{"higher strain same level", "1S", true},
		{"notrump same level", "1N", true},
		{"higher level lower strain", "2C", true},
		{"lower strain same level", "1D", false},
		{"identical bid", "1H", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := play(t, North, "1H")
			call, err := ParseCall(tt.bid)
			require.NoError(t, err)
			err = a.Submit(East, call)
			if tt.legal {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrIllegalCall)
			}
		})
	}
}

func TestBarNotResetByPassDoubleRedouble(t *testing.T) {
	// 1S D R P: the standing contract is still 1S, so 1H stays illegal.
	a := play(t, North, "1S", "D", "R", "P")
	err := a.Submit(North, NewBid(1, Hearts))
	assert.ErrorIs(t, err, ErrIllegalCall)
	require.NoError(t, a.Submit(North, NewBid(2, Hearts)))
}

func TestDoubleLegality(t *testing.T) {
	t.Run("opposing contract", func(t *testing.T) {
		a := play(t, North, "1H")
		assert.NoError(t, a.Submit(East, DoubleCall))
	})

	t.Run("no contract outstanding", func(t *testing.T) {
		a := play(t, North, "P")
		assert.ErrorIs(t, a.Submit(East, DoubleCall), ErrIllegalCall)
	})

	t.Run("own partnership's contract", func(t *testing.T) {
		// North opens, East passes; South may not double partner's bid.
		a := play(t, North, "1H", "P")
		assert.ErrorIs(t, a.Submit(South, DoubleCall), ErrIllegalCall)
	})

	t.Run("reopening over trailing passes", func(t *testing.T) {
		// 1H P P back to East: the opposing 1H is still the last
		// non-pass call, so a balancing double is allowed.
		a := play(t, North, "1H", "P", "P")
		assert.NoError(t, a.Submit(West, DoubleCall))
	})

	t.Run("already doubled", func(t *testing.T) {
		a := play(t, North, "1H", "D", "P")
		assert.ErrorIs(t, a.Submit(West, DoubleCall), ErrIllegalCall)
	})
}

func TestRedoubleLegality(t *testing.T) {
	t.Run("directly over opposing double", func(t *testing.T) {
		a := play(t, North, "1H", "D")
		assert.NoError(t, a.Submit(South, RedoubleCall))
	})

	t.Run("pass in between", func(t *testing.T) {
		a := play(t, North, "1H", "D", "P")
		assert.ErrorIs(t, a.Submit(West, RedoubleCall), ErrIllegalCall)
	})

	t.Run("over contract bid", func(t *testing.T) {
		a := play(t, North, "1H")
		assert.ErrorIs(t, a.Submit(East, RedoubleCall), ErrIllegalCall)
	})

	t.Run("empty auction", func(t *testing.T) {
		a := NewAuction(North)
		assert.ErrorIs(t, a.Submit(North, RedoubleCall), ErrIllegalCall)
	})
}

func TestDeclarerIsFirstToBidStrain(t *testing.T) {
	// North opens 1H, South raises to 2H: North declares even though
	// South made the final contract bid.
	a := play(t, North, "1H", "P", "2H", "P", "P", "P")
	contract, ok := a.FinalContract()
	require.True(t, ok)
	assert.Equal(t, NewBid(2, Hearts), contract)

	declarer, ok := a.Declarer()
	require.True(t, ok)
	assert.Equal(t, North, declarer)
}

func TestDeclarerIgnoresOpponentStrainBids(t *testing.T) {
	// East bids hearts first overall, but the contract belongs to
	// North-South; the first heart bid within that side is South's.
	a := play(t, North, "P", "1H", "2H", "P", "P", "P")
	declarer, ok := a.Declarer()
	require.True(t, ok)
	assert.Equal(t, South, declarer)
}

func TestDeclarerDistinctStrains(t *testing.T) {
	// Final contract is in spades; North bid spades before South took
	// the partnership to game.
	a := play(t, North, "1S", "P", "2C", "P", "2S", "P", "4S", "P", "P", "P")
	contract, ok := a.FinalContract()
	require.True(t, ok)
	assert.Equal(t, NewBid(4, Spades), contract)

	declarer, ok := a.Declarer()
	require.True(t, ok)
	assert.Equal(t, North, declarer)
}

func TestLastCallBy(t *testing.T) {
	a := play(t, West, "1C", "P", "1H")
	call, ok := a.LastCallBy(West)
	require.True(t, ok)
	assert.Equal(t, NewBid(1, Clubs), call)

	call, ok = a.LastCallBy(East)
	require.True(t, ok)
	assert.Equal(t, NewBid(1, Hearts), call)

	_, ok = a.LastCallBy(South)
	assert.False(t, ok)

	assert.True(t, a.HasBidNonPass(West))
	assert.False(t, a.HasBidNonPass(North))
}
