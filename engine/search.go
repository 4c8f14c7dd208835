package engine

import (
	"math"
	"sort"
	"time"
)

const searchInf = math.MaxInt32

type SearchStats struct {
	Nodes          int64
	Leaves         int64
	TTProbes       int64
	TTHits         int64
	TTStores       int64
	Cutoffs        int64
	CandidateCount int64
	Start          time.Time
}

// Searcher runs depth-bounded minimax with alpha-beta pruning. Scores are
// always from the perspective player's side: that player maximizes, the
// opponent minimizes.
type Searcher struct {
	eval        *Evaluator
	perspective PlayerColor
	tt          *TranspositionTable
	// Pruning and Ordering can be switched off to compare against the plain
	// search.
	Pruning  bool
	Ordering bool
	Stats    SearchStats
}

// NewSearcher returns a searcher for perspective. A nil table disables
// caching.
func NewSearcher(eval *Evaluator, perspective PlayerColor, tt *TranspositionTable) *Searcher {
	return &Searcher{
		eval:        eval,
		perspective: perspective,
		tt:          tt,
		Pruning:     true,
		Ordering:    true,
		Stats:       SearchStats{Start: time.Now()},
	}
}

// ScoreMove plays move for the perspective player and searches the reply
// tree with depth-1 plies left and a full window.
func (s *Searcher) ScoreMove(board Board, move Move, depth int) int {
	child := ApplyMove(board, move, s.perspective)
	return s.Minimax(child, depth-1, -searchInf, searchInf, s.perspective.Opponent())
}

func (s *Searcher) Minimax(board Board, depth int, alpha, beta int, mover PlayerColor) int {
	s.Stats.Nodes++
	if depth <= 0 {
		return s.leaf(board)
	}
	if _, over := Winner(board); over {
		return s.leaf(board)
	}
	moves := GenerateMoves(board, mover)
	if len(moves) == 0 {
		return s.leaf(board)
	}

	key := NodeKey(board, mover)
	if s.tt != nil {
		s.Stats.TTProbes++
		if entry, ok := s.tt.Probe(key); ok {
			if used, ret, value := applyTTEntry(entry, depth, &alpha, &beta, &s.Stats); used {
				s.Stats.TTHits++
				if ret {
					return value
				}
			}
		}
	}
	// Bounds are classified against the window left after the table tightened it.
	alphaOrig, betaOrig := alpha, beta

	maximizing := mover == s.perspective
	if s.Ordering && depth > 1 {
		s.orderMoves(board, moves, mover, maximizing)
	}
	s.Stats.CandidateCount += int64(len(moves))

	best := searchInf
	if maximizing {
		best = -searchInf
	}
	for _, move := range moves {
		child := ApplyMove(board, move, mover)
		value := s.Minimax(child, depth-1, alpha, beta, mover.Opponent())
		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if s.Pruning && alpha >= beta {
			s.Stats.Cutoffs++
			break
		}
	}

	if s.tt != nil {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		}
		s.tt.Store(key, depth, best, flag)
		s.Stats.TTStores++
	}
	return best
}

func (s *Searcher) leaf(board Board) int {
	s.Stats.Leaves++
	return s.eval.Evaluate(board, s.perspective)
}

// orderMoves sorts moves by a one-ply evaluation, best first for the side
// to move. Equal scores keep generation order.
func (s *Searcher) orderMoves(board Board, moves []Move, mover PlayerColor, maximizing bool) {
	scores := make(map[Move]int, len(moves))
	for _, move := range moves {
		scores[move] = s.eval.Evaluate(ApplyMove(board, move, mover), s.perspective)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		if maximizing {
			return scores[moves[i]] > scores[moves[j]]
		}
		return scores[moves[i]] < scores[moves[j]]
	})
}

func applyTTEntry(entry TTEntry, depth int, alpha *int, beta *int, stats *SearchStats) (used bool, ret bool, value int) {
	if entry.Depth < depth {
		return false, false, 0
	}
	switch entry.Flag {
	case TTExact:
		return true, true, entry.Score
	case TTLower:
		if entry.Score > *alpha {
			*alpha = entry.Score
		}
	case TTUpper:
		if entry.Score < *beta {
			*beta = entry.Score
		}
	}
	if *alpha >= *beta {
		if stats != nil {
			stats.Cutoffs++
		}
		return true, true, entry.Score
	}
	return true, false, entry.Score
}
