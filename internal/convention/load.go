package convention

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/openbridge/bidpractice/internal/bridge"
)

// Rule files are HCL: repeated opening/rebid blocks plus response blocks
// labelled with the partner bid they answer.
//
//	name = "Basic 15-17 notrump"
//
//	opening {
//	  bid      = "1N"
//	  priority = 10
//	  hcp_min  = 15
//	  hcp_max  = 17
//	  balanced = true
//	}
//
//	response "1N" {
//	  bid      = "3N"
//	  hcp_min  = 10
//	}
type ruleFile struct {
	Name      string          `hcl:"name,optional"`
	Openings  []ruleBlock     `hcl:"opening,block"`
	Responses []responseBlock `hcl:"response,block"`
	Rebids    []ruleBlock     `hcl:"rebid,block"`
}

type ruleBlock struct {
	Bid           string `hcl:"bid"`
	Priority      int    `hcl:"priority,optional"`
	HCPMin        int    `hcl:"hcp_min,optional"`
	HCPMax        int    `hcl:"hcp_max,optional"`
	Balanced      bool   `hcl:"balanced,optional"`
	Suit          string `hcl:"suit,optional"`
	SuitLengthMin int    `hcl:"suit_length_min,optional"`
}

type responseBlock struct {
	Partner       string `hcl:"partner,label"`
	Bid           string `hcl:"bid"`
	Priority      int    `hcl:"priority,optional"`
	HCPMin        int    `hcl:"hcp_min,optional"`
	HCPMax        int    `hcl:"hcp_max,optional"`
	Balanced      bool   `hcl:"balanced,optional"`
	Suit          string `hcl:"suit,optional"`
	SuitLengthMin int    `hcl:"suit_length_min,optional"`
}

// LoadFile parses and validates a convention rule file. Malformed rule data
// fails here, at load time, never mid-game.
func LoadFile(filename string) (*RuleSet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing convention file: %s", diags.Error())
	}

	var rf ruleFile
	if diags := gohcl.DecodeBody(file.Body, nil, &rf); diags.HasErrors() {
		return nil, fmt.Errorf("decoding convention file: %s", diags.Error())
	}
	return rf.build()
}

// Parse parses convention rules from a byte slice; filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*RuleSet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing convention rules: %s", diags.Error())
	}

	var rf ruleFile
	if diags := gohcl.DecodeBody(file.Body, nil, &rf); diags.HasErrors() {
		return nil, fmt.Errorf("decoding convention rules: %s", diags.Error())
	}
	return rf.build()
}

func (rf ruleFile) build() (*RuleSet, error) {
	rs := &RuleSet{
		Name:      rf.Name,
		Responses: make(map[bridge.Call][]Rule),
	}

	for _, b := range rf.Openings {
		rule, err := b.toRule()
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", b.Bid, err)
		}
		rs.Openings = append(rs.Openings, rule)
	}
	for _, b := range rf.Responses {
		partner, err := bridge.ParseCall(b.Partner)
		if err != nil {
			return nil, fmt.Errorf("response label %q: %w", b.Partner, err)
		}
		rule, err := ruleBlock{
			Bid: b.Bid, Priority: b.Priority,
			HCPMin: b.HCPMin, HCPMax: b.HCPMax, Balanced: b.Balanced,
			Suit: b.Suit, SuitLengthMin: b.SuitLengthMin,
		}.toRule()
		if err != nil {
			return nil, fmt.Errorf("response %q to %q: %w", b.Bid, b.Partner, err)
		}
		rs.Responses[partner] = append(rs.Responses[partner], rule)
	}
	for _, b := range rf.Rebids {
		rule, err := b.toRule()
		if err != nil {
			return nil, fmt.Errorf("rebid %q: %w", b.Bid, err)
		}
		rs.Rebids = append(rs.Rebids, rule)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

func (b ruleBlock) toRule() (Rule, error) {
	call, err := bridge.ParseCall(b.Bid)
	if err != nil {
		return Rule{}, err
	}
	cond := Conditions{
		HCPMin:        b.HCPMin,
		HCPMax:        b.HCPMax,
		Balanced:      b.Balanced,
		SuitLengthMin: b.SuitLengthMin,
	}
	if b.Suit != "" {
		suit, err := bridge.StrainFromLetter(b.Suit)
		if err != nil {
			return Rule{}, err
		}
		cond.Suit = suit
	}
	return Rule{Call: call, Priority: b.Priority, Cond: cond}, nil
}
