package gogame

import "github.com/parlorhub/gameroom-go/internal/model"

// Board is a square grid of stone colors; empty string means empty
type Board [][]string

func newBoard(size int) Board {
	b := make(Board, size)
	for i := range b {
		b[i] = make([]string, size)
	}
	return b
}

func (b Board) clone() Board {
	next := make(Board, len(b))
	for i, row := range b {
		next[i] = append([]string(nil), row...)
	}
	return next
}

func (b Board) equal(other Board) bool {
	if other == nil || len(b) != len(other) {
		return false
	}
	for r := range b {
		for c := range b[r] {
			if b[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

func (b Board) onBoard(p model.Position) bool {
	return p.Row >= 0 && p.Row < len(b) && p.Col >= 0 && p.Col < len(b)
}

func neighbors(p model.Position) [4]model.Position {
	return [4]model.Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

// group flood-fills the same-colored connected stones from seed,
// collecting the group's liberties as it goes
func (b Board) group(seed model.Position) (stones []model.Position, liberties map[model.Position]bool) {
	color := b[seed.Row][seed.Col]
	if color == "" {
		return nil, nil
	}
	liberties = make(map[model.Position]bool)
	visited := map[model.Position]bool{seed: true}
	stack := []model.Position{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, p)
		for _, n := range neighbors(p) {
			if !b.onBoard(n) || visited[n] {
				continue
			}
			switch b[n.Row][n.Col] {
			case "":
				liberties[n] = true
			case color:
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return stones, liberties
}

// removeDeadNeighbors removes every opposing group adjacent to pos that
// has no liberties left, returning the number of stones captured.
// Capture resolves before any suicide check on the placed stone.
func (b Board) removeDeadNeighbors(pos model.Position, opponent string) int {
	captured := 0
	for _, n := range neighbors(pos) {
		if !b.onBoard(n) || b[n.Row][n.Col] != opponent {
			continue
		}
		stones, liberties := b.group(n)
		if len(liberties) == 0 {
			for _, s := range stones {
				b[s.Row][s.Col] = ""
			}
			captured += len(stones)
		}
	}
	return captured
}

// areaScores computes area scores: stones on the board plus territory.
// An empty region counts as territory only when its boundary touches
// stones of exactly one color.
func (b Board) areaScores() (black, white int) {
	size := len(b)
	visited := make(map[model.Position]bool)

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := model.Position{Row: r, Col: c}
			switch b[r][c] {
			case "black":
				black++
				continue
			case "white":
				white++
				continue
			}
			if visited[p] {
				continue
			}

			// Flood-fill this empty region and record which colors
			// border it
			region := []model.Position{p}
			visited[p] = true
			touches := map[string]bool{}
			for i := 0; i < len(region); i++ {
				for _, n := range neighbors(region[i]) {
					if !b.onBoard(n) {
						continue
					}
					if color := b[n.Row][n.Col]; color != "" {
						touches[color] = true
					} else if !visited[n] {
						visited[n] = true
						region = append(region, n)
					}
				}
			}
			if len(touches) == 1 {
				if touches["black"] {
					black += len(region)
				} else {
					white += len(region)
				}
			}
		}
	}
	return black, white
}
