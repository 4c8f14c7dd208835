package engine

import (
	"reflect"
	"testing"
)

const movementBoard = "B.B.B/...../.B.R./...../R.R.R"

func TestGenerateMovesPlacement(t *testing.T) {
	moves := GenerateMoves(Board{}, PlayerBlack)
	if len(moves) != CellCount {
		t.Fatalf("expected %d placements, got %d", CellCount, len(moves))
	}
	for i, move := range moves {
		if move != (Place{Cell: i}) {
			t.Fatalf("expected ascending placements, got %v at %d", move, i)
		}
	}
}

func TestGenerateMovesMovement(t *testing.T) {
	board := mustBoard(t, movementBoard)
	moves := GenerateMoves(board, PlayerBlack)
	if len(moves) != 19 {
		t.Fatalf("expected 19 relocations, got %d", len(moves))
	}
	if moves[0] != (Relocate{From: 0, To: 1}) {
		t.Fatalf("expected first move 0->1, got %v", moves[0])
	}
	if CountMoves(board, PlayerBlack) != len(moves) {
		t.Fatalf("CountMoves disagrees with GenerateMoves")
	}
	for _, move := range moves {
		r := move.(Relocate)
		if board.At(r.From) != CellBlack || board.At(r.To) != CellEmpty || !Adjacent(r.From, r.To) {
			t.Fatalf("illegal generated move %v", r)
		}
		if ok, reason := IsLegal(board, PhaseMovement, PlayerBlack, move); !ok {
			t.Fatalf("generated move %v rejected: %s", move, reason)
		}
	}
}

func TestGenerateMovesDeterministic(t *testing.T) {
	for _, s := range []string{movementBoard, "B..../..R../...../...../.....", "BR.RB/RR.../...../...../B...B"} {
		board := mustBoard(t, s)
		for _, player := range []PlayerColor{PlayerBlack, PlayerRed} {
			first := GenerateMoves(board, player)
			second := GenerateMoves(board, player)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("%s: move generation is not deterministic", s)
			}
		}
	}
}

func TestGenerateMovesInvalidBoard(t *testing.T) {
	board := mustBoard(t, "BBBBB/...../...../...../.....")
	if moves := GenerateMoves(board, PlayerRed); len(moves) != 0 {
		t.Fatalf("expected no moves on an invalid board, got %d", len(moves))
	}
	if CountMoves(board, PlayerRed) != 0 {
		t.Fatalf("expected zero count on an invalid board")
	}
}

func TestWinningMoves(t *testing.T) {
	board := mustBoard(t, "BBB../...B./....R/...../R.R.R")
	wins := WinningMoves(board, PlayerBlack)
	if len(wins) != 1 || wins[0] != (Relocate{From: 8, To: 3}) {
		t.Fatalf("expected single win 8->3, got %v", wins)
	}
	if got := WinningMoves(board, PlayerRed); len(got) != 0 {
		t.Fatalf("expected no red wins, got %v", got)
	}
}
