package chess

import "github.com/parlorhub/gameroom-go/internal/model"

// PieceType names a chess piece kind
type PieceType string

const (
	Pawn   PieceType = "pawn"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

// Piece is one chess piece. Moved tracks castling eligibility for kings
// and rooks.
type Piece struct {
	Color model.Seat `json:"color"`
	Type  PieceType  `json:"type"`
	Moved bool       `json:"moved,omitempty"`
}

// Board is the 8x8 grid; row 0 is black's back rank, row 7 white's.
// Seat 0 is white.
type Board [8][8]*Piece

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var bishopRays = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var rookRays = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// forward is the pawn movement direction for each seat: white moves
// toward row 0
func forward(color model.Seat) int {
	if color == 0 {
		return -1
	}
	return 1
}

// backRank is each color's home rank
func backRank(color model.Seat) int {
	if color == 0 {
		return 7
	}
	return 0
}

// pawnStartRank is the rank pawns double-push from
func pawnStartRank(color model.Seat) int {
	if color == 0 {
		return 6
	}
	return 1
}

// promotionRank is the farthest rank for each color's pawns
func promotionRank(color model.Seat) int {
	if color == 0 {
		return 0
	}
	return 7
}

func onBoard(p model.Position) bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (b *Board) at(p model.Position) *Piece {
	return b[p.Row][p.Col]
}

func (b *Board) clone() Board {
	var next Board
	for r := range b {
		for c, piece := range b[r] {
			if piece != nil {
				cp := *piece
				next[r][c] = &cp
			}
		}
	}
	return next
}

// kingPos locates the given color's king
func (b *Board) kingPos(color model.Seat) model.Position {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b[r][c]
			if p != nil && p.Color == color && p.Type == King {
				return model.Position{Row: r, Col: c}
			}
		}
	}
	// A board without a king is a corrupt state
	panic("chess: no king on board")
}

// attacked reports whether pos is attacked by any piece of the given
// color: knight offsets, pawn forward diagonals, king adjacency, and
// ray-walks for the sliders stopping at the first occupied square
func (b *Board) attacked(pos model.Position, by model.Seat) bool {
	for _, o := range knightOffsets {
		p := model.Position{Row: pos.Row + o[0], Col: pos.Col + o[1]}
		if onBoard(p) {
			if piece := b.at(p); piece != nil && piece.Color == by && piece.Type == Knight {
				return true
			}
		}
	}

	// A pawn of color `by` attacks pos if it sits one rank behind pos
	// (relative to its movement) on an adjacent file
	pawnRow := pos.Row - forward(by)
	for _, dc := range []int{-1, 1} {
		p := model.Position{Row: pawnRow, Col: pos.Col + dc}
		if onBoard(p) {
			if piece := b.at(p); piece != nil && piece.Color == by && piece.Type == Pawn {
				return true
			}
		}
	}

	for _, o := range kingOffsets {
		p := model.Position{Row: pos.Row + o[0], Col: pos.Col + o[1]}
		if onBoard(p) {
			if piece := b.at(p); piece != nil && piece.Color == by && piece.Type == King {
				return true
			}
		}
	}

	for _, ray := range bishopRays {
		if t := b.firstAlongRay(pos, ray); t != nil && t.Color == by && (t.Type == Bishop || t.Type == Queen) {
			return true
		}
	}
	for _, ray := range rookRays {
		if t := b.firstAlongRay(pos, ray); t != nil && t.Color == by && (t.Type == Rook || t.Type == Queen) {
			return true
		}
	}
	return false
}

// firstAlongRay walks from pos in the given direction and returns the
// first piece encountered, or nil
func (b *Board) firstAlongRay(pos model.Position, ray [2]int) *Piece {
	p := model.Position{Row: pos.Row + ray[0], Col: pos.Col + ray[1]}
	for onBoard(p) {
		if piece := b.at(p); piece != nil {
			return piece
		}
		p.Row += ray[0]
		p.Col += ray[1]
	}
	return nil
}

// inCheck reports whether the given color's king is attacked
func (b *Board) inCheck(color model.Seat) bool {
	return b.attacked(b.kingPos(color), color.Other())
}

// startingBoard sets up the initial position
func startingBoard() Board {
	var b Board
	order := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c, t := range order {
		b[0][c] = &Piece{Color: 1, Type: t}
		b[7][c] = &Piece{Color: 0, Type: t}
	}
	for c := 0; c < 8; c++ {
		b[1][c] = &Piece{Color: 1, Type: Pawn}
		b[6][c] = &Piece{Color: 0, Type: Pawn}
	}
	return b
}
