package engine

import "github.com/notnil/chess"

// kingSquare finds the king of the given color.
func kingSquare(b *chess.Board, c chess.Color) chess.Square {
	for sq, p := range b.SquareMap() {
		if p.Type() == chess.King && p.Color() == c {
			return sq
		}
	}
	return chess.NoSquare
}

// attacked reports whether sq is attacked by a piece of color by.
func attacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	for from, p := range b.SquareMap() {
		if p.Color() == by && pieceAttacks(b, p, from, sq) {
			return true
		}
	}
	return false
}

func pieceAttacks(b *chess.Board, p chess.Piece, from, to chess.Square) bool {
	fd := int(to.File()) - int(from.File())
	rd := int(to.Rank()) - int(from.Rank())

	switch p.Type() {
	case chess.Pawn:
		dir := 1
		if p.Color() == chess.Black {
			dir = -1
		}
		return rd == dir && (fd == 1 || fd == -1)
	case chess.Knight:
		return (abs(fd) == 1 && abs(rd) == 2) || (abs(fd) == 2 && abs(rd) == 1)
	case chess.King:
		return (fd != 0 || rd != 0) && abs(fd) <= 1 && abs(rd) <= 1
	case chess.Bishop:
		return fd != 0 && abs(fd) == abs(rd) && clearPath(b, from, to)
	case chess.Rook:
		return (fd == 0) != (rd == 0) && clearPath(b, from, to)
	case chess.Queen:
		straight := (fd == 0) != (rd == 0)
		diagonal := fd != 0 && abs(fd) == abs(rd)
		return (straight || diagonal) && clearPath(b, from, to)
	}
	return false
}

// clearPath reports whether the squares strictly between from and to are
// empty. The squares must share a rank, file or diagonal.
func clearPath(b *chess.Board, from, to chess.Square) bool {
	fstep := sign(int(to.File()) - int(from.File()))
	rstep := sign(int(to.Rank()) - int(from.Rank()))
	f := int(from.File()) + fstep
	r := int(from.Rank()) + rstep
	for f != int(to.File()) || r != int(to.Rank()) {
		if b.Piece(chess.Square(r*8+f)) != chess.NoPiece {
			return false
		}
		f += fstep
		r += rstep
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
