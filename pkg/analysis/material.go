package analysis

import "github.com/notnil/chess"

// SideMaterial counts one side's pieces.
type SideMaterial struct {
	Pawns   int `json:"pawns"`
	Knights int `json:"knights"`
	Bishops int `json:"bishops"`
	Rooks   int `json:"rooks"`
	Queens  int `json:"queens"`
}

// Total returns the side's material in pawn units (P=1, N/B=3, R=5, Q=9).
func (s SideMaterial) Total() int {
	return s.Pawns + 3*s.Knights + 3*s.Bishops + 5*s.Rooks + 9*s.Queens
}

// MaterialBalance is the material count for both sides.
type MaterialBalance struct {
	White SideMaterial `json:"white"`
	Black SideMaterial `json:"black"`
}

// Net returns White's material advantage in pawn units.
func (m MaterialBalance) Net() int {
	return m.White.Total() - m.Black.Total()
}

// NetFor returns the material advantage from the given side's perspective.
func (m MaterialBalance) NetFor(color chess.Color) int {
	if color == chess.Black {
		return -m.Net()
	}
	return m.Net()
}

// Pieces returns the number of non-pawn pieces on the board, kings excluded.
func (m MaterialBalance) Pieces() int {
	return m.White.Knights + m.White.Bishops + m.White.Rooks + m.White.Queens +
		m.Black.Knights + m.Black.Bishops + m.Black.Rooks + m.Black.Queens
}

// Material counts the pieces in a position.
func Material(pos *chess.Position) MaterialBalance {
	var m MaterialBalance
	for _, piece := range pos.Board().SquareMap() {
		side := &m.White
		if piece.Color() == chess.Black {
			side = &m.Black
		}
		switch piece.Type() {
		case chess.Pawn:
			side.Pawns++
		case chess.Knight:
			side.Knights++
		case chess.Bishop:
			side.Bishops++
		case chess.Rook:
			side.Rooks++
		case chess.Queen:
			side.Queens++
		}
	}
	return m
}
