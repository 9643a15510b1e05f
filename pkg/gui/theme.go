package gui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/mino"
)

// Theme is used for dynamically coloring the board
type Theme struct {
	Name     string
	Blue     tcell.Color
	Cyan     tcell.Color
	Red      tcell.Color
	Yellow   tcell.Color
	Magenta  tcell.Color
	Green    tcell.Color
	Orange   tcell.Color
	Border   tcell.Color
	Empty    tcell.Color
	Score    tcell.Color
	GameOver tcell.Color
}

// ThemeHex holds a Theme as tview color tag values
type ThemeHex struct {
	Name     string
	Blue     string
	Cyan     string
	Red      string
	Yellow   string
	Magenta  string
	Green    string
	Orange   string
	Border   string
	Empty    string
	Score    string
	GameOver string
}

// fmtHex returns "-" for ColorDefault, which tview reads as "reset to the
// default color", and a standard hex otherwise.
func fmtHex(v int32) string {
	if v == -1 {
		return "-"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Blue.Hex()),
		fmtHex(t.Cyan.Hex()),
		fmtHex(t.Red.Hex()),
		fmtHex(t.Yellow.Hex()),
		fmtHex(t.Magenta.Hex()),
		fmtHex(t.Green.Hex()),
		fmtHex(t.Orange.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Score.Hex()),
		fmtHex(t.GameOver.Hex()),
	}
}

// Block returns the tag value used to draw b
func (t ThemeHex) Block(b mino.Block) string {
	switch b {
	case mino.BlockSolidBlue:
		return t.Blue
	case mino.BlockSolidCyan:
		return t.Cyan
	case mino.BlockSolidRed:
		return t.Red
	case mino.BlockSolidYellow:
		return t.Yellow
	case mino.BlockSolidMagenta:
		return t.Magenta
	case mino.BlockSolidGreen:
		return t.Green
	case mino.BlockSolidOrange:
		return t.Orange
	default:
		return t.Empty
	}
}

// ImportThemes returns the theme in themes whose name matches want
func ImportThemes(want string, themes []Theme) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, want) {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// ThemeClassic is the default theme
var ThemeClassic = Theme{
	"classic",
	tcell.NewHexColor(0x2864ff), // Blue
	tcell.NewHexColor(0x00eeee), // Cyan
	tcell.NewHexColor(0xee0000), // Red
	tcell.NewHexColor(0xdddd00), // Yellow
	tcell.NewHexColor(0xc000cc), // Magenta
	tcell.NewHexColor(0x00e900), // Green
	tcell.NewHexColor(0xff7308), // Orange
	tcell.ColorDefault,          // Border
	tcell.Color240,              // Empty
	tcell.ColorDefault,          // Score
	tcell.Color160,              // GameOver
}

// ThemeMono draws every piece in the terminal's default color
var ThemeMono = Theme{
	"mono",
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.ColorDefault,
}

var Themes = []Theme{ThemeClassic, ThemeMono}
