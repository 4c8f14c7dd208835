package engine

import "fmt"

type GameStatus int

const (
	StatusRunning GameStatus = iota
	StatusBlackWon
	StatusRedWon
)

// GameState is the authoritative match state. It is mutated only through
// its apply methods and is not safe for concurrent use; hosts driving it
// from several goroutines must serialize calls.
type GameState struct {
	board       Board
	toMove      PlayerColor
	phase       Phase
	ply         int
	placed      int
	status      GameStatus
	winningLine WinPattern
}

func NewGameState() *GameState {
	state := &GameState{}
	state.Reset()
	return state
}

// NewGameStateFrom resumes a match from board with toMove to play. The board
// must be reachable: at most four pieces per colour.
func NewGameStateFrom(board Board, toMove PlayerColor) (*GameState, error) {
	if !board.Valid() {
		return nil, fmt.Errorf("game state: board %s holds too many pieces", board)
	}
	state := &GameState{
		board:  board,
		toMove: toMove,
		phase:  board.Phase(),
		placed: board.CountOccupied(),
		ply:    board.CountOccupied(),
	}
	if winner, ok := Winner(board); ok {
		state.winningLine, _ = WinningPattern(board, winner)
		if winner == PlayerBlack {
			state.status = StatusBlackWon
		} else {
			state.status = StatusRedWon
		}
	}
	return state, nil
}

func (s *GameState) Reset() {
	s.board = Board{}
	s.toMove = PlayerBlack
	s.phase = PhasePlacement
	s.ply = 0
	s.placed = 0
	s.status = StatusRunning
	s.winningLine = WinPattern{}
}

func (s *GameState) Clone() *GameState {
	clone := *s
	return &clone
}

func (s *GameState) CurrentPlayer() PlayerColor { return s.toMove }
func (s *GameState) Phase() Phase               { return s.phase }

// TurnCount is the number of moves applied so far, placements and relocations alike.
func (s *GameState) TurnCount() int     { return s.ply }
func (s *GameState) Board() Board       { return s.board }
func (s *GameState) Status() GameStatus { return s.status }
func (s *GameState) IsOver() bool       { return s.status != StatusRunning }

func (s *GameState) Winner() (PlayerColor, bool) {
	switch s.status {
	case StatusBlackWon:
		return PlayerBlack, true
	case StatusRedWon:
		return PlayerRed, true
	default:
		return PlayerBlack, false
	}
}

// WinningLine is the pattern that ended the game, valid only when IsOver.
func (s *GameState) WinningLine() (WinPattern, bool) {
	return s.winningLine, s.IsOver()
}

func (s *GameState) WinPatterns() []WinPattern {
	return WinPatterns()
}

// SwitchPlayer hands the turn to the other player without playing a move.
// It exists to pick a non-default first mover.
func (s *GameState) SwitchPlayer() {
	if s.IsOver() {
		return
	}
	s.toMove = s.toMove.Opponent()
}

func (s *GameState) ApplyPlacement(cell int) bool {
	ok, _ := s.TryApply(Place{Cell: cell})
	return ok
}

func (s *GameState) ApplyRelocation(from, to int) bool {
	ok, _ := s.TryApply(Relocate{From: from, To: to})
	return ok
}

func (s *GameState) Apply(move Move) bool {
	ok, _ := s.TryApply(move)
	return ok
}

// TryApply validates and plays move for the current player. On failure the
// state is unchanged and the reason says why.
func (s *GameState) TryApply(move Move) (bool, string) {
	if move == nil {
		return false, "no move"
	}
	if s.IsOver() {
		return false, "game over"
	}
	if ok, reason := IsLegal(s.board, s.phase, s.toMove, move); !ok {
		return false, reason
	}
	mover := s.toMove
	s.board = ApplyMove(s.board, move, mover)
	s.ply++
	if _, ok := move.(Place); ok {
		s.placed++
	}
	if line, won := WinningPattern(s.board, mover); won {
		s.winningLine = line
		if mover == PlayerBlack {
			s.status = StatusBlackWon
		} else {
			s.status = StatusRedWon
		}
		return true, ""
	}
	if s.phase == PhasePlacement && s.placed >= PlacementPlies {
		s.phase = PhaseMovement
	}
	s.toMove = mover.Opponent()
	return true, ""
}
