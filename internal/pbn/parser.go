// Package pbn parses Portable Bridge Notation deal files into boards.
//
// Only the tags the practice server needs are read: Board, Dealer,
// Vulnerable, Deal, ParContract, OptimumScore and the OptimumResultTable
// block. Records that are malformed or missing a deal are skipped rather
// than failing the whole file.
package pbn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/openbridge/bidpractice/internal/bridge"
)

var (
	boardRe   = regexp.MustCompile(`^\[Board "(.+)"\]`)
	dealerRe  = regexp.MustCompile(`^\[Dealer "([NESW])"\]`)
	vulnRe    = regexp.MustCompile(`^\[Vulnerable "(.+)"\]`)
	dealRe    = regexp.MustCompile(`^\[Deal "([NESW]):(.+)"\]`)
	parRe     = regexp.MustCompile(`^\[ParContract "(.+)"\]`)
	scoreRe   = regexp.MustCompile(`^\[OptimumScore "(.+)"\]`)
	ddRowRe   = regexp.MustCompile(`^([NESW])\s+(NT|[SHDC])\s+(\d+)\s*$`)
	anyTagRe  = regexp.MustCompile(`^\[`)
	optTagStr = "[OptimumResultTable"
)

// record accumulates tag values for one board until it is finalized.
type record struct {
	label      string
	dealer     *bridge.Seat
	vuln       bridge.Vulnerability
	hands      *[4]bridge.Hand
	par, score string
	dd         *bridge.DoubleDummyTable
	bad        bool
}

// Result is the outcome of parsing a deal file.
type Result struct {
	Boards  []bridge.Board
	Skipped int // records dropped as malformed or incomplete
}

// Parse reads a PBN stream and returns all usable boards. An error is only
// returned for a failed read; bad records just bump Skipped.
func Parse(r io.Reader) (Result, error) {
	var res Result
	var cur *record
	inOptimumTable := false

	flush := func() {
		if cur == nil {
			return
		}
		board, ok := cur.finalize()
		if ok {
			res.Boards = append(res.Boards, board)
		} else {
			res.Skipped++
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := boardRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &record{label: m[1]}
			inOptimumTable = false
			continue
		}
		if cur == nil {
			continue
		}

		switch {
		case dealerRe.MatchString(line):
			seat, err := bridge.SeatFromLetter(dealerRe.FindStringSubmatch(line)[1])
			if err != nil {
				cur.bad = true
				continue
			}
			cur.dealer = &seat

		case vulnRe.MatchString(line):
			vuln, err := bridge.VulnerabilityFromToken(vulnRe.FindStringSubmatch(line)[1])
			if err != nil {
				cur.bad = true
				continue
			}
			cur.vuln = vuln

		case dealRe.MatchString(line):
			m := dealRe.FindStringSubmatch(line)
			hands, err := parseDeal(m[1], m[2])
			if err != nil {
				cur.bad = true
				continue
			}
			cur.hands = hands

		case parRe.MatchString(line):
			cur.par = parRe.FindStringSubmatch(line)[1]

		case scoreRe.MatchString(line):
			cur.score = scoreRe.FindStringSubmatch(line)[1]

		case strings.HasPrefix(line, optTagStr):
			inOptimumTable = true
			cur.dd = &bridge.DoubleDummyTable{}

		case inOptimumTable && ddRowRe.MatchString(line):
			m := ddRowRe.FindStringSubmatch(line)
			declarer, _ := bridge.SeatFromLetter(m[1])
			strain, _ := bridge.StrainFromLetter(m[2])
			tricks, _ := strconv.Atoi(m[3])
			if tricks <= 13 {
				cur.dd.Set(declarer, strain, tricks)
			}

		case inOptimumTable && anyTagRe.MatchString(line):
			inOptimumTable = false
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("reading deal file: %w", err)
	}
	flush()
	return res, nil
}

// ParseFile parses a PBN file from disk.
func ParseFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening deal file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// finalize turns an accumulated record into a Board. A record without a
// dealer or a full deal is unusable.
func (rec *record) finalize() (bridge.Board, bool) {
	if rec.bad || rec.dealer == nil || rec.hands == nil {
		return bridge.Board{}, false
	}
	return bridge.Board{
		Label:         rec.label,
		Dealer:        *rec.dealer,
		Vulnerability: rec.vuln,
		Hands:         *rec.hands,
		ParContract:   rec.par,
		ParScore:      rec.score,
		DoubleDummy:   rec.dd,
	}, true
}

// parseDeal expands a PBN deal string: four space-separated holdings in
// clockwise seat order starting from the named first seat.
func parseDeal(firstSeat, deal string) (*[4]bridge.Hand, error) {
	start, err := bridge.SeatFromLetter(firstSeat)
	if err != nil {
		return nil, err
	}
	holdings := strings.Fields(deal)
	if len(holdings) != 4 {
		return nil, fmt.Errorf("deal %q: want 4 hands, got %d", deal, len(holdings))
	}
	var hands [4]bridge.Hand
	for i, holding := range holdings {
		hand, err := bridge.ParseHand(holding)
		if err != nil {
			return nil, err
		}
		hands[(start+bridge.Seat(i))%4] = hand
	}
	return &hands, nil
}
