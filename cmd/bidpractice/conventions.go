package main

import (
	"fmt"

	"github.com/openbridge/bidpractice/internal/convention"
)

// ConventionsCmd parses and validates a convention rule file
type ConventionsCmd struct {
	File string `kong:"arg,help='Convention rule file (HCL)'"`
}

func (c *ConventionsCmd) Run() error {
	rules, err := convention.LoadFile(c.File)
	if err != nil {
		return err
	}

	name := rules.Name
	if name == "" {
		name = "(unnamed)"
	}
	responses := 0
	for _, tier := range rules.Responses {
		responses += len(tier)
	}
	fmt.Printf("%s: %d opening(s), %d response(s) across %d partner bid(s), %d rebid(s)\n",
		name, len(rules.Openings), responses, len(rules.Responses), len(rules.Rebids))
	fmt.Println("OK")
	return nil
}
