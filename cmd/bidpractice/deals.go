package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openbridge/bidpractice/internal/bridge"
	"github.com/openbridge/bidpractice/internal/pbn"
)

var (
	boardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	seatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	parStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// DealsCmd prints the boards in a PBN deal file
type DealsCmd struct {
	File  string `kong:"arg,help='PBN deal file'"`
	Board string `kong:"help='Show only the board with this label'"`
}

func (c *DealsCmd) Run() error {
	result, err := pbn.ParseFile(c.File)
	if err != nil {
		return err
	}
	if len(result.Boards) == 0 {
		return fmt.Errorf("no usable boards in %s", c.File)
	}

	shown := 0
	for _, board := range result.Boards {
		if c.Board != "" && board.Label != c.Board {
			continue
		}
		printBoard(board)
		shown++
	}
	if c.Board != "" && shown == 0 {
		return fmt.Errorf("no board labelled %q in %s", c.Board, c.File)
	}

	if result.Skipped > 0 {
		fmt.Println(metaStyle.Render(fmt.Sprintf("(%d malformed record(s) skipped)", result.Skipped)))
	}
	return nil
}

func printBoard(board bridge.Board) {
	fmt.Println(boardHeaderStyle.Render("Board " + board.Label))
	fmt.Println(metaStyle.Render(fmt.Sprintf("  Dealer %s, Vulnerable %s", board.Dealer, board.Vulnerability)))

	for _, seat := range bridge.Seats() {
		fmt.Printf("  %s  %s\n", seatStyle.Render(seat.Letter()), board.Hand(seat))
	}

	if board.ParContract != "" {
		line := "  Par: " + board.ParContract
		if board.ParScore != "" {
			line += " (" + board.ParScore + ")"
		}
		fmt.Println(parStyle.Render(line))
	}
	printDoubleDummy(board)
	fmt.Println()
}

func printDoubleDummy(board bridge.Board) {
	if board.DoubleDummy == nil {
		return
	}

	var b strings.Builder
	b.WriteString("      ")
	for _, strain := range bridge.Strains() {
		fmt.Fprintf(&b, "%4s", strain.Letter())
	}
	b.WriteByte('\n')

	any := false
	for _, seat := range bridge.Seats() {
		row := fmt.Sprintf("  %s   ", seat.Letter())
		rowHasData := false
		for _, strain := range bridge.Strains() {
			if tricks, ok := board.DoubleDummy.Tricks(seat, strain); ok {
				row += fmt.Sprintf("%4d", tricks)
				rowHasData = true
			} else {
				row += "   -"
			}
		}
		if rowHasData {
			b.WriteString(row)
			b.WriteByte('\n')
			any = true
		}
	}
	if any {
		fmt.Print(metaStyle.Render(b.String()))
	}
}
