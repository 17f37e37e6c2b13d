package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme colors the coached-game UI.
type Theme struct {
	Name        string      `json:"name"`
	SquareDark  tcell.Color `json:"squareDark"`
	SquareLight tcell.Color `json:"squareLight"`
	SquareHigh  tcell.Color `json:"squareHigh"`
	SquareCheck tcell.Color `json:"squareCheck"`
	White       tcell.Color `json:"white"`
	Black       tcell.Color `json:"black"`
	Rank        tcell.Color `json:"rank"`
	File        tcell.Color `json:"file"`
	Coach       tcell.Color `json:"coach"`
	Eval        tcell.Color `json:"eval"`
	Status      tcell.Color `json:"status"`
	Msg         tcell.Color `json:"msg"`
}

// ThemeHex is the JSON-friendly form of a Theme.
type ThemeHex struct {
	Name        string `json:"name"`
	SquareDark  string `json:"squareDark"`
	SquareLight string `json:"squareLight"`
	SquareHigh  string `json:"squareHigh"`
	SquareCheck string `json:"squareCheck"`
	White       string `json:"white"`
	Black       string `json:"black"`
	Rank        string `json:"rank"`
	File        string `json:"file"`
	Coach       string `json:"coach"`
	Eval        string `json:"eval"`
	Status      string `json:"status"`
	Msg         string `json:"msg"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareHigh.Hex()),
		fmtHex(t.SquareCheck.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Rank.Hex()),
		fmtHex(t.File.Hex()),
		fmtHex(t.Coach.Hex()),
		fmtHex(t.Eval.Hex()),
		fmtHex(t.Status.Hex()),
		fmtHex(t.Msg.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareHigh),
		tcell.GetColor(t.SquareCheck),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Rank),
		tcell.GetColor(t.File),
		tcell.GetColor(t.Coach),
		tcell.GetColor(t.Eval),
		tcell.GetColor(t.Status),
		tcell.GetColor(t.Msg),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	return Theme{}, errors.New("theme: no theme found")
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",        // Name
	tcell.Color188, // SquareDark
	tcell.Color230, // SquareLight
	tcell.Color226, // SquareHigh
	tcell.Color218, // SquareCheck
	tcell.Color232, // White
	tcell.Color160, // Black
	tcell.Color247, // Rank
	tcell.Color247, // File
	tcell.Color71,  // Coach
	tcell.Color45,  // Eval
	tcell.Color247, // Status
	tcell.Color160, // Msg
}
