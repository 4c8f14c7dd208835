package engine

import "sync"

const PatternLen = 4

// WinPattern is a set of four cells; owning all of them wins the game.
type WinPattern [PatternLen]int

func (p WinPattern) Contains(idx int) bool {
	for _, cell := range p {
		if cell == idx {
			return true
		}
	}
	return false
}

// Counts returns how many cells of the pattern each player holds and how many are empty.
func (p WinPattern) Counts(board Board, player PlayerColor) (own, opp, empty int) {
	ownCell := CellFromPlayer(player)
	for _, idx := range p {
		switch board[idx] {
		case CellEmpty:
			empty++
		case ownCell:
			own++
		default:
			opp++
		}
	}
	return own, opp, empty
}

type patternCatalog struct {
	once     sync.Once
	patterns []WinPattern
	byCell   [CellCount][]int
}

var catalog patternCatalog

// WinPatterns returns the 40 winning patterns. The slice is shared and must
// not be modified.
func WinPatterns() []WinPattern {
	catalog.load()
	return catalog.patterns
}

// PatternsThrough returns the indexes (into WinPatterns) of every pattern containing idx.
func PatternsThrough(idx int) []int {
	catalog.load()
	return catalog.byCell[idx]
}

func (c *patternCatalog) load() {
	c.once.Do(func() {
		c.patterns = buildPatterns()
		for i, pattern := range c.patterns {
			for _, idx := range pattern {
				c.byCell[idx] = append(c.byCell[idx], i)
			}
		}
	})
}

func buildPatterns() []WinPattern {
	patterns := make([]WinPattern, 0, 40)
	// Rows.
	for row := 0; row < BoardSize; row++ {
		for col := 0; col+PatternLen <= BoardSize; col++ {
			patterns = append(patterns, collectLine(row, col, 0, 1))
		}
	}
	// Cols.
	for col := 0; col < BoardSize; col++ {
		for row := 0; row+PatternLen <= BoardSize; row++ {
			patterns = append(patterns, collectLine(row, col, 1, 0))
		}
	}
	// Diagonals (\) along the main diagonal.
	for offset := 0; offset+PatternLen <= BoardSize; offset++ {
		patterns = append(patterns, collectLine(offset, offset, 1, 1))
	}
	// Anti-diagonals (/) along the main anti-diagonal.
	for offset := 0; offset+PatternLen <= BoardSize; offset++ {
		patterns = append(patterns, collectLine(offset, BoardSize-1-offset, 1, -1))
	}
	// 2x2 squares.
	for row := 0; row < BoardSize-1; row++ {
		for col := 0; col < BoardSize-1; col++ {
			patterns = append(patterns, WinPattern{
				Index(row, col), Index(row, col+1),
				Index(row+1, col), Index(row+1, col+1),
			})
		}
	}
	return patterns
}

func collectLine(row, col, dr, dc int) WinPattern {
	var p WinPattern
	for i := 0; i < PatternLen; i++ {
		p[i] = Index(row+i*dr, col+i*dc)
	}
	return p
}
