package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
)

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiBlack, color.Bold)
	checkedSq  = color.New(color.FgHiRed, color.Bold)
	labelText  = color.New(color.FgCyan)
	lightDot   = color.New(color.FgWhite, color.Faint)
	darkDot    = color.New(color.FgBlack, color.Faint)
)

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// squareShade reports which player's color a square is painted in.
func squareShade(sq chess.Square) chess.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return chess.Black
	}
	return chess.White
}

// renderSquare draws one square, two columns wide like the terminal
// boards the engine GUIs use.
func renderSquare(sb *strings.Builder, p chess.Piece, sq chess.Square, checked bool) {
	if p == chess.NoPiece {
		dot := lightDot
		if squareShade(sq) == chess.Black {
			dot = darkDot
		}
		sb.WriteString(dot.Sprint("· "))
		return
	}

	glyph, _ := utf8.DecodeRuneInString(p.String())
	style := whitePiece
	if p.Color() == chess.Black {
		style = blackPiece
	}
	if checked {
		style = checkedSq
	}
	sb.WriteString(style.Sprint(string(glyph)))
	sb.WriteString(" ")
}

// RenderBoard draws the board with rank and file labels. White sits at
// the bottom unless flip is set. The side to move's king is highlighted
// while it is in check.
func RenderBoard(g *engine.Game, flip bool) string {
	var sb strings.Builder
	board := g.Position().Board()

	checkedKing := chess.NoPiece
	if g.InCheck() {
		checkedKing = chess.WhiteKing
		if g.Turn() == chess.Black {
			checkedKing = chess.BlackKing
		}
	}

	sb.WriteString("\n")
	for i := 0; i < 8; i++ {
		r := chess.Rank(7 - i)
		if flip {
			r = chess.Rank(i)
		}
		sb.WriteString(labelText.Sprint(r.String()))
		sb.WriteString("  ")
		for j := 0; j < 8; j++ {
			f := chess.File(j)
			if flip {
				f = chess.File(7 - j)
			}
			sq := getSquare(f, r)
			p := board.Piece(sq)
			renderSquare(&sb, p, sq, p != chess.NoPiece && p == checkedKing)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("   ")
	files := "a b c d e f g h"
	if flip {
		files = "h g f e d c b a"
	}
	sb.WriteString(labelText.Sprint(files))
	sb.WriteString("\n")
	return sb.String()
}
