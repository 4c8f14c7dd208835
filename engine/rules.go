package engine

// IsLegal checks move for player on board in the given phase. The reason is
// empty when the move is legal.
func IsLegal(board Board, phase Phase, player PlayerColor, move Move) (bool, string) {
	switch m := move.(type) {
	case Place:
		if phase != PhasePlacement {
			return false, "wrong phase"
		}
		if !m.IsValid() {
			return false, "out of range"
		}
		if board[m.Cell] != CellEmpty {
			return false, "occupied"
		}
		return true, ""
	case Relocate:
		if phase != PhaseMovement {
			return false, "wrong phase"
		}
		if !m.IsValid() {
			return false, "out of range"
		}
		if board[m.From] == CellEmpty {
			return false, "empty"
		}
		if board[m.From] != CellFromPlayer(player) {
			return false, "not your piece"
		}
		if board[m.To] != CellEmpty {
			return false, "occupied"
		}
		if !Adjacent(m.From, m.To) {
			return false, "not adjacent"
		}
		return true, ""
	default:
		return false, "unknown move"
	}
}

// IsWin reports whether player fully occupies any catalog pattern.
func IsWin(board Board, player PlayerColor) bool {
	_, ok := WinningPattern(board, player)
	return ok
}

func WinningPattern(board Board, player PlayerColor) (WinPattern, bool) {
	target := CellFromPlayer(player)
	for _, pattern := range WinPatterns() {
		if board[pattern[0]] == target && board[pattern[1]] == target &&
			board[pattern[2]] == target && board[pattern[3]] == target {
			return pattern, true
		}
	}
	return WinPattern{}, false
}

// Winner returns the player owning a full pattern, if any.
func Winner(board Board) (PlayerColor, bool) {
	if IsWin(board, PlayerBlack) {
		return PlayerBlack, true
	}
	if IsWin(board, PlayerRed) {
		return PlayerRed, true
	}
	return PlayerBlack, false
}

// ApplyMove returns the board after player plays move. The move is assumed
// legal; callers in the search only pass generated moves.
func ApplyMove(board Board, move Move, player PlayerColor) Board {
	cell := CellFromPlayer(player)
	switch m := move.(type) {
	case Place:
		board.Set(m.Cell, cell)
	case Relocate:
		board.Remove(m.From)
		board.Set(m.To, cell)
	}
	return board
}
