package game

import "strings"

// lines holds the 3 rows, 3 columns and 2 diagonals.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is an immutable 3x3 grid; Play returns a new copy and leaves the
// receiver untouched. The zero value is an empty board in progress.
type Board struct {
	cells [Cells]Mark
}

// NewBoard returns a board holding the given cells. It does not check that
// the position is reachable.
func NewBoard(cells [Cells]Mark) Board {
	return Board{cells: cells}
}

// Cells returns a copy of the cell marks, indexed 0-8 row by row.
func (b Board) Cells() [Cells]Mark {
	return b.cells
}

// At returns the mark in a cell.
func (b Board) At(index int) Mark {
	return b.cells[index]
}

// Count returns the number of cells holding the mark.
func (b Board) Count(mark Mark) int {
	n := 0
	for _, m := range b.cells {
		if m == mark {
			n++
		}
	}
	return n
}

// Key captures the board as a Q-table key.
func (b Board) Key() StateKey {
	var k StateKey
	for i := Cells - 1; i >= 0; i-- {
		k = k*3 + StateKey(b.cells[i])
	}
	return k
}

// LegalMoves returns the empty cell indices in ascending order, or nil once
// the game is over.
func (b Board) LegalMoves() []int {
	if b.Evaluate().Terminal() {
		return nil
	}
	moves := make([]int, 0, Cells)
	for i, m := range b.cells {
		if m == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// Play places mark at index and returns the resulting board.
func (b Board) Play(index int, mark Mark) (Board, error) {
	if index < 0 || index >= Cells {
		return b, &IllegalMoveError{Index: index, Mark: mark, Reason: "cell out of range"}
	}
	if mark != Human && mark != Agent {
		return b, &IllegalMoveError{Index: index, Mark: mark, Reason: "not a player mark"}
	}
	if b.Evaluate().Terminal() {
		return b, &IllegalMoveError{Index: index, Mark: mark, Reason: "game is over"}
	}
	if b.cells[index] != Empty {
		return b, &IllegalMoveError{Index: index, Mark: mark, Reason: "cell is occupied"}
	}
	b.cells[index] = mark
	return b, nil
}

// Evaluate checks the winning lines, then whether the board is full.
// Moves alternate one mark at a time, so two winners cannot coexist and the
// first matching line is authoritative.
func (b Board) Evaluate() Outcome {
	for _, line := range lines {
		m := b.cells[line[0]]
		if m != Empty && m == b.cells[line[1]] && m == b.cells[line[2]] {
			if m == Agent {
				return WonAgent
			}
			return WonHuman
		}
	}
	for _, m := range b.cells {
		if m == Empty {
			return InProgress
		}
	}
	return Drawn
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sb.WriteString(b.cells[row*3+col].String())
		}
		if row < 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
