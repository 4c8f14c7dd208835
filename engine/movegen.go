package engine

// Valid reports whether the board could arise in a real game: no player
// holds more than PiecesEach pieces.
func (b Board) Valid() bool {
	return b.CountOf(PlayerBlack) <= PiecesEach && b.CountOf(PlayerRed) <= PiecesEach
}

// GenerateMoves enumerates the legal moves of player on board in ascending
// cell order (source cell first, then destination). The phase is derived
// from the number of pieces on the board.
func GenerateMoves(board Board, player PlayerColor) []Move {
	return appendMoves(nil, board, player)
}

func appendMoves(moves []Move, board Board, player PlayerColor) []Move {
	if !board.Valid() {
		return moves
	}
	if board.Phase() == PhasePlacement {
		for idx := 0; idx < CellCount; idx++ {
			if board[idx] == CellEmpty {
				moves = append(moves, Place{Cell: idx})
			}
		}
		return moves
	}
	return appendRelocations(moves, board, player)
}

func appendRelocations(moves []Move, board Board, player PlayerColor) []Move {
	own := CellFromPlayer(player)
	for from := 0; from < CellCount; from++ {
		if board[from] != own {
			continue
		}
		for _, to := range neighbours[from] {
			if board[to] == CellEmpty {
				moves = append(moves, Relocate{From: from, To: to})
			}
		}
	}
	return moves
}

// CountMoves is len(GenerateMoves) without the allocation.
func CountMoves(board Board, player PlayerColor) int {
	if !board.Valid() {
		return 0
	}
	if board.Phase() == PhasePlacement {
		return board.CountEmpty()
	}
	own := CellFromPlayer(player)
	count := 0
	for from := 0; from < CellCount; from++ {
		if board[from] != own {
			continue
		}
		for _, to := range neighbours[from] {
			if board[to] == CellEmpty {
				count++
			}
		}
	}
	return count
}

// WinningMoves returns the moves of player that complete a pattern at once.
func WinningMoves(board Board, player PlayerColor) []Move {
	return winningAmong(board, player, GenerateMoves(board, player))
}

// NextTurnThreats returns the winning moves player would have on its next
// turn, after the side to move has played. When the pending placement is the
// last one, player will be relocating, not placing.
func NextTurnThreats(board Board, player PlayerColor) []Move {
	if board.Phase() == PhasePlacement && board.CountOccupied()+1 >= PlacementPlies {
		if !board.Valid() {
			return nil
		}
		return winningAmong(board, player, appendRelocations(nil, board, player))
	}
	return WinningMoves(board, player)
}

func winningAmong(board Board, player PlayerColor, moves []Move) []Move {
	var wins []Move
	for _, move := range moves {
		if IsWin(ApplyMove(board, move, player), player) {
			wins = append(wins, move)
		}
	}
	return wins
}
