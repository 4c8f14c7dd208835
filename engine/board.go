package engine

import (
	"fmt"
	"strings"
)

const (
	BoardSize  = 5
	CellCount  = BoardSize * BoardSize
	PiecesEach = 4
	// PlacementPlies is the total number of placements before the movement phase.
	PlacementPlies = PiecesEach * 2
)

type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellRed
)

// Board is a value type; copying it yields an independent snapshot.
type Board [CellCount]Cell

func (b Board) At(idx int) Cell {
	return b[idx]
}

func (b *Board) Set(idx int, value Cell) {
	b[idx] = value
}

func (b *Board) Remove(idx int) {
	b[idx] = CellEmpty
}

func InBounds(idx int) bool {
	return idx >= 0 && idx < CellCount
}

func (b Board) IsEmpty(idx int) bool {
	return InBounds(idx) && b[idx] == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) CountOccupied() int {
	return CellCount - b.CountEmpty()
}

func (b Board) CountOf(player PlayerColor) int {
	target := CellFromPlayer(player)
	count := 0
	for _, cell := range b {
		if cell == target {
			count++
		}
	}
	return count
}

// Phase is derived from the number of pieces on the board.
func (b Board) Phase() Phase {
	if b.CountOccupied() < PlacementPlies {
		return PhasePlacement
	}
	return PhaseMovement
}

// Swapped returns the board with both colors exchanged.
func (b Board) Swapped() Board {
	var out Board
	for i, cell := range b {
		switch cell {
		case CellBlack:
			out[i] = CellRed
		case CellRed:
			out[i] = CellBlack
		}
	}
	return out
}

// Key packs the board into 2 bits per cell. It is exact, so two boards share
// a key only if they are equal.
func (b Board) Key() uint64 {
	var key uint64
	for i, cell := range b {
		key |= uint64(cell) << (2 * uint(i))
	}
	return key
}

func RowCol(idx int) (int, int) {
	return idx / BoardSize, idx % BoardSize
}

func Index(row, col int) int {
	return row*BoardSize + col
}

// Adjacent reports 8-neighbour adjacency; a cell is not adjacent to itself.
func Adjacent(from, to int) bool {
	if !InBounds(from) || !InBounds(to) || from == to {
		return false
	}
	fr, fc := RowCol(from)
	tr, tc := RowCol(to)
	return absInt(fr-tr) <= 1 && absInt(fc-tc) <= 1
}

var neighbours = buildNeighbours()

func buildNeighbours() [CellCount][]int {
	var out [CellCount][]int
	for from := 0; from < CellCount; from++ {
		for to := 0; to < CellCount; to++ {
			if Adjacent(from, to) {
				out[from] = append(out[from], to)
			}
		}
	}
	return out
}

// Neighbours lists the adjacent cells of idx in ascending order.
func Neighbours(idx int) []int {
	return neighbours[idx]
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch b[Index(row, col)] {
			case CellBlack:
				sb.WriteByte('B')
			case CellRed:
				sb.WriteByte('R')
			default:
				sb.WriteByte('.')
			}
		}
		if row < BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseBoard reads the format produced by Board.String.
func ParseBoard(s string) (Board, error) {
	var b Board
	rows := strings.Split(s, "/")
	if len(rows) != BoardSize {
		return b, fmt.Errorf("board: expected %d rows, got %d", BoardSize, len(rows))
	}
	for row, line := range rows {
		if len(line) != BoardSize {
			return b, fmt.Errorf("board: row %d has %d cells", row, len(line))
		}
		for col := 0; col < BoardSize; col++ {
			switch line[col] {
			case 'B', 'b':
				b[Index(row, col)] = CellBlack
			case 'R', 'r':
				b[Index(row, col)] = CellRed
			case '.':
			default:
				return b, fmt.Errorf("board: unexpected %q at row %d col %d", line[col], row, col)
			}
		}
	}
	return b, nil
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellRed:
		return "Red"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellRed
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
