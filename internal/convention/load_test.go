package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbridge/bidpractice/internal/bridge"
)

const sampleRules = `
name = "Basic notrump"

opening {
  bid      = "1N"
  priority = 10
  hcp_min  = 15
  hcp_max  = 17
  balanced = true
}

opening {
  bid             = "1S"
  priority        = 8
  hcp_min         = 12
  suit            = "S"
  suit_length_min = 5
}

response "1N" {
  bid      = "3N"
  priority = 8
  hcp_min  = 10
}

response "1N" {
  bid      = "2N"
  priority = 5
  hcp_min  = 8
  hcp_max  = 9
}

rebid {
  bid      = "2N"
  priority = 3
  hcp_min  = 17
}
`

func TestParseRules(t *testing.T) {
	rs, err := Parse([]byte(sampleRules), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "Basic notrump", rs.Name)
	require.Len(t, rs.Openings, 2)
	require.Len(t, rs.Rebids, 1)

	open := rs.Openings[0]
	assert.Equal(t, bridge.NewBid(1, bridge.NoTrump), open.Call)
	assert.Equal(t, 10, open.Priority)
	assert.Equal(t, 15, open.Cond.HCPMin)
	assert.Equal(t, 17, open.Cond.HCPMax)
	assert.True(t, open.Cond.Balanced)

	spadeOpen := rs.Openings[1]
	assert.Equal(t, bridge.Spades, spadeOpen.Cond.Suit)
	assert.Equal(t, 5, spadeOpen.Cond.SuitLengthMin)

	oneNT := bridge.NewBid(1, bridge.NoTrump)
	require.Len(t, rs.Responses[oneNT], 2)
	assert.Equal(t, bridge.NewBid(3, bridge.NoTrump), rs.Responses[oneNT][0].Call)
}

func TestParseRulesRejectsBadBid(t *testing.T) {
	_, err := Parse([]byte(`opening { bid = "9C" }`), "test.hcl")
	assert.Error(t, err)
}

func TestParseRulesRejectsBadPartnerLabel(t *testing.T) {
	_, err := Parse([]byte(`response "D" { bid = "P" }`), "test.hcl")
	assert.Error(t, err)
}

func TestParseRulesRejectsInvertedHCPBounds(t *testing.T) {
	src := `
opening {
  bid     = "1C"
  hcp_min = 12
  hcp_max = 10
}
`
	_, err := Parse([]byte(src), "test.hcl")
	assert.Error(t, err)
}

func TestParseRulesRejectsSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`opening { bid = `), "test.hcl")
	assert.Error(t, err)
}

func TestParseRulesRejectsNotrumpLengthCondition(t *testing.T) {
	src := `
opening {
  bid             = "1C"
  suit            = "N"
  suit_length_min = 4
}
`
	_, err := Parse([]byte(src), "test.hcl")
	assert.Error(t, err)
}
