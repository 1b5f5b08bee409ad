package game

import "fmt"

// Cells is the number of squares on the board.
const Cells = 9

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	Human
	Agent
)

func (m Mark) String() string {
	switch m {
	case Empty:
		return "."
	case Human:
		return "X"
	case Agent:
		return "O"
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Outcome is derived purely from the board contents.
type Outcome int

const (
	InProgress Outcome = iota
	WonAgent
	WonHuman
	Drawn
)

// Terminal reports whether no further moves are accepted.
func (o Outcome) Terminal() bool {
	return o != InProgress
}

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case WonAgent:
		return "won_agent"
	case WonHuman:
		return "won_human"
	case Drawn:
		return "drawn"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// StateKey packs the 9 cells of a board into base-3 digits, cell 0 being the
// least significant. It is the Q-table key and never aliases a live board.
type StateKey uint32

// Board decodes the key back into the board it was captured from.
func (k StateKey) Board() Board {
	var b Board
	for i := 0; i < Cells; i++ {
		b.cells[i] = Mark(k % 3)
		k /= 3
	}
	return b
}

func (k StateKey) String() string {
	b := k.Board()
	buf := make([]byte, Cells)
	for i, m := range b.cells {
		buf[i] = m.String()[0]
	}
	return string(buf)
}
