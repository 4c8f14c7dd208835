package engine

// SearchDepth picks how many plies tier searches on board. Fixed tiers read
// the tier table; the adaptive tier searches deeper the fewer moves it has.
func SearchDepth(cfg Config, tier Difficulty, board Board, me PlayerColor) int {
	if !tier.Adaptive() {
		t := cfg.Tier(tier)
		if board.Phase() == PhasePlacement {
			return maxInt(1, t.PlacementDepth)
		}
		return maxInt(1, t.Depth)
	}
	if board.Phase() == PhasePlacement {
		if board.CountOccupied() < PlacementPlies/2 {
			return cfg.ExpertEarlyPlacement
		}
		return cfg.ExpertLatePlacement
	}
	mobility := CountMoves(board, me)
	depth := cfg.ExpertMaxDepth - maxInt(0, mobility-1)/cfg.ExpertMobilityStep
	return clampInt(depth, cfg.ExpertMinDepth, cfg.ExpertMaxDepth)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
