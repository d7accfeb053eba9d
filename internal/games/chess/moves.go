package chess

import "github.com/parlorhub/gameroom-go/internal/model"

// Move is a chess move. Promotion applies only when a pawn reaches the
// farthest rank; empty defaults to queen.
type Move struct {
	From      model.Position `json:"from"`
	To        model.Position `json:"to"`
	Promotion PieceType      `json:"promotion,omitempty"`
}

// pseudoMoves generates the pseudo-legal moves for the piece at from.
// Castling is generated with its full legality conditions (both pieces
// unmoved, empty between, king path unattacked); everything else is
// filtered for self-check by the caller.
func pseudoMoves(b *Board, from model.Position, enPassant *model.Position) []Move {
	piece := b.at(from)
	if piece == nil {
		return nil
	}

	var moves []Move
	add := func(to model.Position) {
		moves = append(moves, Move{From: from, To: to})
	}

	switch piece.Type {
	case Pawn:
		dir := forward(piece.Color)
		one := model.Position{Row: from.Row + dir, Col: from.Col}
		if onBoard(one) && b.at(one) == nil {
			add(one)
			two := model.Position{Row: from.Row + 2*dir, Col: from.Col}
			if from.Row == pawnStartRank(piece.Color) && b.at(two) == nil {
				add(two)
			}
		}
		for _, dc := range []int{-1, 1} {
			diag := model.Position{Row: from.Row + dir, Col: from.Col + dc}
			if !onBoard(diag) {
				continue
			}
			if target := b.at(diag); target != nil && target.Color != piece.Color {
				add(diag)
			} else if enPassant != nil && diag == *enPassant {
				add(diag)
			}
		}

	case Knight:
		for _, o := range knightOffsets {
			to := model.Position{Row: from.Row + o[0], Col: from.Col + o[1]}
			if onBoard(to) && (b.at(to) == nil || b.at(to).Color != piece.Color) {
				add(to)
			}
		}

	case Bishop:
		moves = append(moves, slideMoves(b, from, piece, bishopRays[:])...)
	case Rook:
		moves = append(moves, slideMoves(b, from, piece, rookRays[:])...)
	case Queen:
		moves = append(moves, slideMoves(b, from, piece, bishopRays[:])...)
		moves = append(moves, slideMoves(b, from, piece, rookRays[:])...)

	case King:
		for _, o := range kingOffsets {
			to := model.Position{Row: from.Row + o[0], Col: from.Col + o[1]}
			if onBoard(to) && (b.at(to) == nil || b.at(to).Color != piece.Color) {
				add(to)
			}
		}
		moves = append(moves, castleMoves(b, from, piece)...)
	}
	return moves
}

func slideMoves(b *Board, from model.Position, piece *Piece, rays [][2]int) []Move {
	var moves []Move
	for _, ray := range rays {
		to := model.Position{Row: from.Row + ray[0], Col: from.Col + ray[1]}
		for onBoard(to) {
			target := b.at(to)
			if target == nil {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if target.Color != piece.Color {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			to = model.Position{Row: to.Row + ray[0], Col: to.Col + ray[1]}
		}
	}
	return moves
}

// castleMoves generates castling for an unmoved, unchecked king: the
// rook also unmoved, all squares between empty, and the king's start,
// transit and end squares all unattacked
func castleMoves(b *Board, from model.Position, king *Piece) []Move {
	if king.Moved {
		return nil
	}
	rank := backRank(king.Color)
	if from.Row != rank || from.Col != 4 {
		return nil
	}
	opp := king.Color.Other()
	if b.attacked(from, opp) {
		return nil
	}

	var moves []Move
	// Kingside: rook on file 7, files 5-6 empty, king crosses 5 to 6
	if rook := b[rank][7]; rook != nil && rook.Type == Rook && rook.Color == king.Color && !rook.Moved {
		if b[rank][5] == nil && b[rank][6] == nil &&
			!b.attacked(model.Position{Row: rank, Col: 5}, opp) &&
			!b.attacked(model.Position{Row: rank, Col: 6}, opp) {
			moves = append(moves, Move{From: from, To: model.Position{Row: rank, Col: 6}})
		}
	}
	// Queenside: rook on file 0, files 1-3 empty, king crosses 3 to 2
	if rook := b[rank][0]; rook != nil && rook.Type == Rook && rook.Color == king.Color && !rook.Moved {
		if b[rank][1] == nil && b[rank][2] == nil && b[rank][3] == nil &&
			!b.attacked(model.Position{Row: rank, Col: 3}, opp) &&
			!b.attacked(model.Position{Row: rank, Col: 2}, opp) {
			moves = append(moves, Move{From: from, To: model.Position{Row: rank, Col: 2}})
		}
	}
	return moves
}

// applyToBoard plays mv on the board in place, handling en passant
// removal, castling's rook hop and promotion. Returns the captured
// piece, if any.
func applyToBoard(b *Board, mv Move, enPassant *model.Position) *Piece {
	piece := b.at(mv.From)
	captured := b.at(mv.To)

	// En passant: the captured pawn is behind the target square
	if piece.Type == Pawn && captured == nil && enPassant != nil && mv.To == *enPassant {
		capRow := mv.To.Row - forward(piece.Color)
		captured = b[capRow][mv.To.Col]
		b[capRow][mv.To.Col] = nil
	}

	// Castling: the king moves two files; bring the rook across
	if piece.Type == King && abs(mv.To.Col-mv.From.Col) == 2 {
		rank := mv.From.Row
		if mv.To.Col == 6 {
			rook := b[rank][7]
			b[rank][7] = nil
			rook.Moved = true
			b[rank][5] = rook
		} else {
			rook := b[rank][0]
			b[rank][0] = nil
			rook.Moved = true
			b[rank][3] = rook
		}
	}

	b[mv.From.Row][mv.From.Col] = nil
	piece.Moved = true

	if piece.Type == Pawn && mv.To.Row == promotionRank(piece.Color) {
		promo := mv.Promotion
		if promo == "" {
			promo = Queen
		}
		piece.Type = promo
	}

	b[mv.To.Row][mv.To.Col] = piece
	return captured
}

// leavesOwnKingInCheck simulates mv on a scratch copy and tests the
// mover's king. This single filter encodes "can't move into or stay in
// check".
func leavesOwnKingInCheck(b *Board, mv Move, enPassant *model.Position) bool {
	color := b.at(mv.From).Color
	scratch := b.clone()
	applyToBoard(&scratch, mv, enPassant)
	return scratch.inCheck(color)
}

// legalMovesFrom returns the fully legal moves for the piece at from
func legalMovesFrom(b *Board, from model.Position, enPassant *model.Position) []Move {
	var legal []Move
	for _, mv := range pseudoMoves(b, from, enPassant) {
		if !leavesOwnKingInCheck(b, mv, enPassant) {
			legal = append(legal, mv)
		}
	}
	return legal
}

// sideHasLegalMove reports whether the given color has any legal move
func sideHasLegalMove(b *Board, color model.Seat, enPassant *model.Position) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b[r][c]
			if p == nil || p.Color != color {
				continue
			}
			if len(legalMovesFrom(b, model.Position{Row: r, Col: c}, enPassant)) > 0 {
				return true
			}
		}
	}
	return false
}

// insufficientMaterial detects the dead positions K v K, K+minor v K,
// and K+B v K+B with both bishops on the same square color
func insufficientMaterial(b *Board) bool {
	type minor struct {
		piece *Piece
		pos   model.Position
	}
	var minors []minor
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b[r][c]
			if p == nil || p.Type == King {
				continue
			}
			if p.Type != Bishop && p.Type != Knight {
				return false
			}
			minors = append(minors, minor{piece: p, pos: model.Position{Row: r, Col: c}})
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b2 := minors[0], minors[1]
		if a.piece.Type != Bishop || b2.piece.Type != Bishop || a.piece.Color == b2.piece.Color {
			return false
		}
		return (a.pos.Row+a.pos.Col)%2 == (b2.pos.Row+b2.pos.Col)%2
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
