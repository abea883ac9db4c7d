package pbn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbridge/bidpractice/internal/bridge"
)

const sampleFile = `[Event "Practice set"]
[Board "1"]
[Dealer "N"]
[Vulnerable "None"]
[Deal "N:KQ3.A42.K98.Q763 T987.K8.QJT2.K92 AJ2.QJT9.A54.AT4 654.7653.763.J85"]
[ParContract "3NT by N"]
[OptimumScore "NS 400"]
[OptimumResultTable "Declarer;Denomination\2R;Result\2R"]
N NT 9
N S 8
S NT 9
E H 5

[Board "2"]
[Dealer "E"]
[Vulnerable "NS"]
[Deal "E:A5432.K2.T98.T32 KQ.QJT98.A2.9876 JT98.A543.KQ3.A4 76.76.J7654.KQJ5"]

[Board "3"]
[Dealer "S"]
[Vulnerable "EW"]
[Deal "S:A5432.K2.T98 KQ.QJT98.A2.9876 JT98.A543.KQ3.A4 76.76.J7654.KQJ5"]

[Board "4"]
[Vulnerable "All"]
[Deal "W:A5432.K2.T98.T32 KQ.QJT98.A2.9876 JT98.A543.KQ3.A4 76.76.J7654.KQJ5"]
`

func TestParse(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	// Board 3 has a bad holding, board 4 has no dealer.
	assert.Len(t, res.Boards, 2)
	assert.Equal(t, 2, res.Skipped)

	b := res.Boards[0]
	assert.Equal(t, "1", b.Label)
	assert.Equal(t, bridge.North, b.Dealer)
	assert.Equal(t, bridge.VulnNone, b.Vulnerability)
	assert.Equal(t, "3NT by N", b.ParContract)
	assert.Equal(t, "NS 400", b.ParScore)

	// First holding in the deal string belongs to the named seat.
	assert.Equal(t, "KQ3.A42.K98.Q763", b.Hand(bridge.North).String())
	assert.Equal(t, "T987.K8.QJT2.K92", b.Hand(bridge.East).String())
	assert.Equal(t, "654.7653.763.J85", b.Hand(bridge.West).String())

	require.NotNil(t, b.DoubleDummy)
	tricks, ok := b.DoubleDummy.Tricks(bridge.North, bridge.NoTrump)
	require.True(t, ok)
	assert.Equal(t, 9, tricks)
	tricks, ok = b.DoubleDummy.Tricks(bridge.East, bridge.Hearts)
	require.True(t, ok)
	assert.Equal(t, 5, tricks)
	_, ok = b.DoubleDummy.Tricks(bridge.West, bridge.Clubs)
	assert.False(t, ok)
}

func TestParseDealRotation(t *testing.T) {
	// A deal string starting from East assigns holdings E, S, W, N.
	res, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	b := res.Boards[1]
	assert.Equal(t, bridge.East, b.Dealer)
	assert.Equal(t, "A5432.K2.T98.T32", b.Hand(bridge.East).String())
	assert.Equal(t, "KQ.QJT98.A2.9876", b.Hand(bridge.South).String())
	assert.Equal(t, "JT98.A543.KQ3.A4", b.Hand(bridge.West).String())
	assert.Equal(t, "76.76.J7654.KQJ5", b.Hand(bridge.North).String())
}

func TestParseEmpty(t *testing.T) {
	res, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Boards)
	assert.Zero(t, res.Skipped)
}
