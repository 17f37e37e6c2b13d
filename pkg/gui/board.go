package gui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
)

const squaresPerRow = 8

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// squareColor reports which side's color a square is painted in.
func squareColor(sq chess.Square) chess.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return chess.Black
	}
	return chess.White
}

// squareBg picks the theme background for a square, marking the last
// move and a checked king.
func squareBg(g *engine.Game, sq chess.Square, p chess.Piece, t Theme) string {
	last := g.LastMove()
	if last != nil && (last.S1() == sq || last.S2() == sq) {
		return fmtHex(t.SquareHigh.Hex())
	}
	if g.InCheck() && p != chess.NoPiece && p.Type() == chess.King && p.Color() == g.Turn() {
		return fmtHex(t.SquareCheck.Hex())
	}
	if squareColor(sq) == chess.Black {
		return fmtHex(t.SquareDark.Hex())
	}
	return fmtHex(t.SquareLight.Hex())
}

// renderSquare emits one two-column square with tview color tags.
func renderSquare(sb *strings.Builder, g *engine.Game, sq chess.Square, p chess.Piece, t Theme) {
	bg := squareBg(g, sq, p, t)
	if p == chess.NoPiece {
		fmt.Fprintf(sb, "[:%s]  ", bg)
		return
	}

	fg := fmtHex(t.White.Hex())
	if p.Color() == chess.Black {
		fg = fmtHex(t.Black.Hex())
	}
	glyph, _ := utf8.DecodeRuneInString(p.String())
	fmt.Fprintf(sb, "[%s:%s]%c ", fg, bg, glyph)
}

// BoardText renders the position as tview markup, white at the bottom
// unless flip is set.
func BoardText(g *engine.Game, t Theme, flip bool) string {
	var sb strings.Builder
	board := g.Position().Board()
	rankFg := fmtHex(t.Rank.Hex())

	for i := 0; i < squaresPerRow; i++ {
		r := chess.Rank(7 - i)
		if flip {
			r = chess.Rank(i)
		}
		fmt.Fprintf(&sb, "[%s:-]%s ", rankFg, r.String())
		for j := 0; j < squaresPerRow; j++ {
			f := chess.File(j)
			if flip {
				f = chess.File(7 - j)
			}
			sq := getSquare(f, r)
			renderSquare(&sb, g, sq, board.Piece(sq), t)
		}
		sb.WriteString("[-:-]\n")
	}

	files := "a b c d e f g h"
	if flip {
		files = "h g f e d c b a"
	}
	fmt.Fprintf(&sb, "[%s:-]  %s[-:-]\n", fmtHex(t.File.Hex()), files)
	return sb.String()
}
