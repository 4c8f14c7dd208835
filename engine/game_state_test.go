package engine

import (
	"math/rand"
	"testing"
)

func mustBoard(t *testing.T, s string) Board {
	t.Helper()
	board, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return board
}

func TestPlacementOnEmptyBoard(t *testing.T) {
	state := NewGameState()
	if !state.ApplyPlacement(12) {
		t.Fatalf("expected placement on empty board to succeed")
	}
	if got := state.Board().At(12); got != CellBlack {
		t.Fatalf("expected black at 12, got %v", got)
	}
	if state.TurnCount() != 1 {
		t.Fatalf("expected turn count 1, got %d", state.TurnCount())
	}
	if state.Phase() != PhasePlacement {
		t.Fatalf("expected placement phase, got %v", state.Phase())
	}
	if state.CurrentPlayer() != PlayerRed {
		t.Fatalf("expected red to move, got %v", state.CurrentPlayer())
	}
}

func TestPlacementWinStopsWithoutSwitch(t *testing.T) {
	state := NewGameState()
	for _, cell := range []int{0, 5, 1, 6, 2, 7, 3} {
		if !state.ApplyPlacement(cell) {
			t.Fatalf("placement at %d rejected", cell)
		}
	}
	winner, ok := state.Winner()
	if !ok || winner != PlayerBlack {
		t.Fatalf("expected black to win, got %v %v", winner, ok)
	}
	if state.CurrentPlayer() != PlayerBlack {
		t.Fatalf("player must not switch after a win")
	}
	if line, ok := state.WinningLine(); !ok || line != (WinPattern{0, 1, 2, 3}) {
		t.Fatalf("unexpected winning line %v", line)
	}
	if state.ApplyPlacement(4) {
		t.Fatalf("expected moves to be rejected once the game is over")
	}
	if ok, reason := state.TryApply(Place{Cell: 4}); ok || reason != "game over" {
		t.Fatalf("expected game over rejection, got %v %q", ok, reason)
	}
}

func TestMovementPhaseAfterEightPlacements(t *testing.T) {
	state := NewGameState()
	for _, cell := range []int{0, 24, 2, 22, 4, 20, 11, 13} {
		if !state.ApplyPlacement(cell) {
			t.Fatalf("placement at %d rejected", cell)
		}
	}
	if state.Phase() != PhaseMovement {
		t.Fatalf("expected movement phase after 8 placements")
	}
	if state.CurrentPlayer() != PlayerBlack {
		t.Fatalf("expected black to move first in movement phase")
	}
	if ok, reason := state.TryApply(Place{Cell: 7}); ok || reason != "wrong phase" {
		t.Fatalf("expected wrong phase, got %v %q", ok, reason)
	}
	if !state.ApplyRelocation(11, 12) {
		t.Fatalf("expected relocation 11->12 to succeed")
	}
	board := state.Board()
	if board.At(11) != CellEmpty || board.At(12) != CellBlack {
		t.Fatalf("unexpected board after relocation: %s", board)
	}
	if state.TurnCount() != 9 {
		t.Fatalf("expected turn count 9, got %d", state.TurnCount())
	}
	if state.CurrentPlayer() != PlayerRed {
		t.Fatalf("expected red to move after relocation")
	}
}

func TestIllegalMovesLeaveStateUnchanged(t *testing.T) {
	cases := []struct {
		name   string
		board  string
		toMove PlayerColor
		move   Move
		reason string
	}{
		{"place out of range", "B..../...../...../...../.....", PlayerRed, Place{Cell: 25}, "out of range"},
		{"place negative", "B..../...../...../...../.....", PlayerRed, Place{Cell: -1}, "out of range"},
		{"place occupied", "B..../...../...../...../.....", PlayerRed, Place{Cell: 0}, "occupied"},
		{"relocate in placement", "B..../...../...../...../.....", PlayerBlack, Relocate{From: 0, To: 1}, "wrong phase"},
		{"relocate not adjacent", "B.B.B/...../.B.R./...../R.R.R", PlayerBlack, Relocate{From: 0, To: 12}, "not adjacent"},
		{"relocate foreign piece", "B.B.B/...../.B.R./...../R.R.R", PlayerBlack, Relocate{From: 13, To: 12}, "not your piece"},
		{"relocate empty source", "B.B.B/...../.B.R./...../R.R.R", PlayerBlack, Relocate{From: 1, To: 6}, "empty"},
		{"relocate occupied target", "BBB.B/...../.R.R./...../R...R", PlayerBlack, Relocate{From: 0, To: 1}, "occupied"},
		{"relocate to self", "B.B.B/...../.B.R./...../R.R.R", PlayerBlack, Relocate{From: 0, To: 0}, "not adjacent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := NewGameStateFrom(mustBoard(t, tc.board), tc.toMove)
			if err != nil {
				t.Fatalf("new state: %v", err)
			}
			before := *state
			ok, reason := state.TryApply(tc.move)
			if ok || reason != tc.reason {
				t.Fatalf("expected rejection %q, got ok=%v reason=%q", tc.reason, ok, reason)
			}
			if *state != before {
				t.Fatalf("state mutated by rejected move")
			}
		})
	}
}

func TestSwitchPlayerSetsFirstMover(t *testing.T) {
	state := NewGameState()
	state.SwitchPlayer()
	if state.CurrentPlayer() != PlayerRed {
		t.Fatalf("expected red to start")
	}
	if !state.ApplyPlacement(0) || state.Board().At(0) != CellRed {
		t.Fatalf("expected red piece at 0")
	}
}

func TestResetClearsState(t *testing.T) {
	state := NewGameState()
	state.ApplyPlacement(3)
	state.Reset()
	if state.TurnCount() != 0 || state.Board() != (Board{}) || state.CurrentPlayer() != PlayerBlack || state.IsOver() {
		t.Fatalf("reset did not restore the initial state")
	}
}

func TestNewGameStateFromFinishedBoard(t *testing.T) {
	state, err := NewGameStateFrom(mustBoard(t, "RR.../RR.../...../...../BBB.."), PlayerBlack)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	if winner, ok := state.Winner(); !ok || winner != PlayerRed {
		t.Fatalf("expected red winner, got %v %v", winner, ok)
	}
	if _, err := NewGameStateFrom(mustBoard(t, "BBBBB/...../...../...../....."), PlayerRed); err == nil {
		t.Fatalf("expected error for five black pieces")
	}
}

func TestRandomPlayoutsNeverHaveTwoWinners(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 200; game++ {
		state := NewGameState()
		for ply := 0; ply < 200 && !state.IsOver(); ply++ {
			moves := GenerateMoves(state.Board(), state.CurrentPlayer())
			if len(moves) == 0 {
				t.Fatalf("no legal move at a running state: %s", state.Board())
			}
			if !state.Apply(moves[rng.Intn(len(moves))]) {
				t.Fatalf("generated move rejected")
			}
			board := state.Board()
			if IsWin(board, PlayerBlack) && IsWin(board, PlayerRed) {
				t.Fatalf("both players own a pattern: %s", board)
			}
			if board.CountOf(PlayerBlack) > PiecesEach || board.CountOf(PlayerRed) > PiecesEach {
				t.Fatalf("too many pieces: %s", board)
			}
		}
	}
}
