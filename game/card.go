package game

import (
	"math/rand"
	"time"
)

// Default card shape, matching the compact 3x3 variant drawn from 1..25.
const (
	DefaultCardRows = 3
	DefaultCardCols = 3
)

// Cell is one slot on a bingo card. Blank cells carry no number and never
// block a row win. Marked is the only field that mutates after creation.
type Cell struct {
	Number int  `json:"number"`
	Blank  bool `json:"blank,omitempty"`
	Marked bool `json:"marked"`
}

// Card is a player's grid. The shape and numbers are fixed at creation;
// only the marked state of cells changes afterwards.
type Card struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// NewCard samples rows*cols unique numbers from 1..max into a fresh card.
func NewCard(rows, cols, max int) *Card {
	if rows <= 0 {
		rows = DefaultCardRows
	}
	if cols <= 0 {
		cols = DefaultCardCols
	}
	need := rows * cols
	if max < need {
		max = need
	}

	nums := make([]int, max)
	for i := range nums {
		nums[i] = i + 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })

	cells := make([][]Cell, rows)
	k := 0
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			cells[r][c] = Cell{Number: nums[k]}
			k++
		}
	}
	return &Card{Rows: rows, Cols: cols, Cells: cells}
}

// Mark sets the marked flag on the cell holding n. It reports whether the
// number is present on the card; marking an already-marked cell is a no-op
// that still reports true.
func (c *Card) Mark(n int) bool {
	for r := range c.Cells {
		for i := range c.Cells[r] {
			cell := &c.Cells[r][i]
			if !cell.Blank && cell.Number == n {
				cell.Marked = true
				return true
			}
		}
	}
	return false
}

// HasWinningRow reports whether some row's non-blank cells are all marked.
// Only rows count; columns and diagonals are intentionally not checked.
// A row of nothing but blanks does not win.
func (c *Card) HasWinningRow() bool {
	for _, row := range c.Cells {
		marked := 0
		complete := true
		for _, cell := range row {
			if cell.Blank {
				continue
			}
			if !cell.Marked {
				complete = false
				break
			}
			marked++
		}
		if complete && marked > 0 {
			return true
		}
	}
	return false
}

// Grid returns the card as rows of plain numbers, the shape clients
// receive. Blank cells are rendered as 0.
func (c *Card) Grid() [][]int {
	out := make([][]int, c.Rows)
	for r, row := range c.Cells {
		out[r] = make([]int, len(row))
		for i, cell := range row {
			if !cell.Blank {
				out[r][i] = cell.Number
			}
		}
	}
	return out
}

// CardFromGrid rebuilds a card from rows of numbers plus the set of marked
// numbers, the persisted representation. Zeroes are blanks.
func CardFromGrid(grid [][]int, marked []int) *Card {
	markedSet := make(map[int]bool, len(marked))
	for _, n := range marked {
		markedSet[n] = true
	}

	rows := len(grid)
	cells := make([][]Cell, rows)
	cols := 0
	for r, row := range grid {
		if len(row) > cols {
			cols = len(row)
		}
		cells[r] = make([]Cell, len(row))
		for i, n := range row {
			if n == 0 {
				cells[r][i] = Cell{Blank: true}
				continue
			}
			cells[r][i] = Cell{Number: n, Marked: markedSet[n]}
		}
	}
	return &Card{Rows: rows, Cols: cols, Cells: cells}
}

// MarkedNumbers returns the marked numbers in row order, for persistence.
func (c *Card) MarkedNumbers() []int {
	out := []int{}
	for _, row := range c.Cells {
		for _, cell := range row {
			if !cell.Blank && cell.Marked {
				out = append(out, cell.Number)
			}
		}
	}
	return out
}
