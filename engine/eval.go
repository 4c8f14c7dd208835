package engine

import "math"

// positionWeights favours the centre cells.
var positionWeights = [CellCount]int{
	1, 2, 2, 2, 1,
	2, 3, 4, 3, 2,
	2, 4, 5, 4, 2,
	2, 3, 4, 3, 2,
	1, 2, 2, 2, 1,
}

// StyleBias scales the evaluator against one specific opponent.
type StyleBias struct {
	Aggression float64
	Fork       float64
}

var NeutralBias = StyleBias{Aggression: 1, Fork: 1}

func (b StyleBias) IsNeutral() bool {
	return b.Aggression == 1 && b.Fork == 1
}

// PatternTotals tallies single-colour catalog patterns by occupancy.
// Index 0 is unused; Own[n] is the number of patterns holding exactly n
// own pieces and no opponent piece.
type PatternTotals struct {
	Own       [PatternLen]int
	Opp       [PatternLen]int
	OwnOpen2  int
	OppOpen2  int
	OwnOpen3  int
	OwnFilled bool
	OppFilled bool
}

func CountPatterns(board Board, player PlayerColor) PatternTotals {
	var t PatternTotals
	for _, pattern := range WinPatterns() {
		own, opp, empty := pattern.Counts(board, player)
		switch {
		case own == PatternLen:
			t.OwnFilled = true
		case opp == PatternLen:
			t.OppFilled = true
		case own > 0 && opp == 0:
			t.Own[own]++
			if own == 2 && empty == 2 {
				t.OwnOpen2++
			}
			if own == 3 && empty == 1 {
				t.OwnOpen3++
			}
		case opp > 0 && own == 0:
			t.Opp[opp]++
			if opp == 2 && empty == 2 {
				t.OppOpen2++
			}
		}
	}
	return t
}

// Evaluator scores boards from one player's point of view. It is
// deterministic: the same board with the same fields always gets the same
// score.
type Evaluator struct {
	Weights  HeuristicConfig
	Bias     StyleBias
	Adaptive bool
	// Recent and LastOpponentTarget are only read when Adaptive is set.
	Recent             *RecentBoards
	LastOpponentTarget int
}

func NewEvaluator(weights HeuristicConfig) *Evaluator {
	return &Evaluator{
		Weights:            resolvedHeuristicConfig(weights),
		Bias:               NeutralBias,
		LastOpponentTarget: -1,
	}
}

func (e *Evaluator) WinScore() int {
	return e.Weights.WinScore
}

func (e *Evaluator) Evaluate(board Board, perspective PlayerColor) int {
	w := e.Weights
	totals := CountPatterns(board, perspective)
	if totals.OwnFilled {
		return w.WinScore
	}
	if totals.OppFilled {
		return -w.WinScore
	}

	score := 0
	if e.Adaptive && e.Recent != nil && e.Recent.Contains(board) {
		score -= w.RepetitionPenalty
	}
	score += positionalScore(board, perspective) * w.PositionalScale
	if board.Phase() == PhaseMovement {
		score += (CountMoves(board, perspective) - CountMoves(board, perspective.Opponent())) * w.Mobility
	}
	score += e.weightedSum(totals)
	if e.Adaptive {
		score -= e.urgency(board, perspective)
	}
	return score
}

func positionalScore(board Board, perspective PlayerColor) int {
	own := CellFromPlayer(perspective)
	total := 0
	for idx, cell := range board {
		switch cell {
		case CellEmpty:
		case own:
			total += positionWeights[idx]
		default:
			total -= positionWeights[idx]
		}
	}
	return total
}

func (e *Evaluator) weightedSum(t PatternTotals) int {
	w := e.Weights
	aggression := e.Bias.Aggression
	fork := e.Bias.Fork
	score := t.Own[1]*w.Own1 + t.Own[2]*w.Own2 + t.Own[3]*w.Own3
	score -= t.Opp[1] * w.Opp1
	score -= scaled(t.Opp[2]*w.Opp2, aggression)
	score -= scaled(t.Opp[3]*w.Opp3, aggression)
	score += scaled(t.OwnOpen2*w.OpenTwo, fork)
	score -= scaled(t.OppOpen2*w.OpenTwo, aggression)
	return score
}

// urgency is the penalty for leaving the opponent's last move unanswered.
func (e *Evaluator) urgency(board Board, perspective PlayerColor) int {
	target := e.LastOpponentTarget
	if !InBounds(target) {
		return 0
	}
	patterns := WinPatterns()
	penalty := 0
	for _, i := range PatternsThrough(target) {
		own, opp, _ := patterns[i].Counts(board, perspective)
		if own != 0 {
			continue
		}
		switch opp {
		case 3:
			penalty += e.Weights.UrgencyThree
		case 2:
			penalty += e.Weights.UrgencyTwo
		}
	}
	return penalty
}

func scaled(value int, multiplier float64) int {
	if multiplier == 1 {
		return value
	}
	return int(math.Round(float64(value) * multiplier))
}
