package engine

import "testing"

func plainSearcher(perspective PlayerColor) *Searcher {
	s := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), perspective, nil)
	s.Pruning = false
	s.Ordering = false
	return s
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	cases := []struct {
		board string
		depth int
	}{
		{"B..../.R.../..B../...R./.....", 3},
		{movementBoard, 3},
		{"BR.RB/RR.../...../...../B...B", 3},
		{"BB.../RR.../..B../...R./..BR.", 4},
	}
	for _, tc := range cases {
		board := mustBoard(t, tc.board)
		for _, player := range []PlayerColor{PlayerBlack, PlayerRed} {
			plain := plainSearcher(player)
			pruned := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), player, nil)
			unordered := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), player, nil)
			unordered.Ordering = false

			want := plain.Minimax(board, tc.depth, -searchInf, searchInf, player)
			if got := pruned.Minimax(board, tc.depth, -searchInf, searchInf, player); got != want {
				t.Fatalf("%s %v: pruned=%d plain=%d", tc.board, player, got, want)
			}
			if got := unordered.Minimax(board, tc.depth, -searchInf, searchInf, player); got != want {
				t.Fatalf("%s %v: unordered=%d plain=%d", tc.board, player, got, want)
			}
			if pruned.Stats.Nodes > plain.Stats.Nodes {
				t.Fatalf("%s: pruning visited more nodes (%d > %d)", tc.board, pruned.Stats.Nodes, plain.Stats.Nodes)
			}
		}
	}
}

func TestAlphaBetaMatchesPlainMinimaxToGameEnd(t *testing.T) {
	// Red cannot reach 6, so black completes the corner square next move.
	board := mustBoard(t, "BBB../B..../....R/...../R.R.R")
	want := plainSearcher(PlayerRed).Minimax(board, 3, -searchInf, searchInf, PlayerRed)
	if want != -DefaultConfig().Heuristics.WinScore {
		t.Fatalf("expected a forced loss for red, got %d", want)
	}
	pruned := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), PlayerRed, nil)
	if got := pruned.Minimax(board, 3, -searchInf, searchInf, PlayerRed); got != want {
		t.Fatalf("pruned=%d plain=%d", got, want)
	}
}

func TestTranspositionTableKeepsRootScores(t *testing.T) {
	for _, s := range []string{"B..../.R.../...../...../.....", "...../.B.../..R../...../....."} {
		board := mustBoard(t, s)
		tt := NewTranspositionTable(1<<12, 2)
		cached := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), PlayerBlack, tt)
		uncached := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), PlayerBlack, nil)
		for _, move := range GenerateMoves(board, PlayerBlack) {
			want := uncached.ScoreMove(board, move, 4)
			if got := cached.ScoreMove(board, move, 4); got != want {
				t.Fatalf("%s %v: cached=%d uncached=%d", s, move, got, want)
			}
		}
		if cached.Stats.TTHits == 0 {
			t.Fatalf("%s: expected transpositions to hit the table", s)
		}
		if cached.Stats.Nodes >= uncached.Stats.Nodes {
			t.Fatalf("%s: table did not save work (%d >= %d)", s, cached.Stats.Nodes, uncached.Stats.Nodes)
		}
	}
}

func TestMinimaxTerminalBoard(t *testing.T) {
	s := NewSearcher(NewEvaluator(DefaultConfig().Heuristics), PlayerBlack, nil)
	board := mustBoard(t, "RRRR./...../..B../...../.....")
	if got := s.Minimax(board, 3, -searchInf, searchInf, PlayerBlack); got != -DefaultConfig().Heuristics.WinScore {
		t.Fatalf("expected loss sentinel, got %d", got)
	}
	if s.Stats.Nodes != 1 {
		t.Fatalf("terminal node must not expand, visited %d", s.Stats.Nodes)
	}
}

func TestSearchDepth(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name  string
		tier  Difficulty
		board string
		want  int
	}{
		{"beginner placement", DifficultyBeginner, "...../...../...../...../.....", 1},
		{"beginner movement", DifficultyBeginner, movementBoard, 1},
		{"normal placement", DifficultyNormal, "B..../...../...../...../.....", 1},
		{"normal movement", DifficultyNormal, movementBoard, 2},
		{"pro placement", DifficultyPro, "B..../...../...../...../.....", 2},
		{"pro movement", DifficultyPro, movementBoard, 3},
		{"expert early placement", DifficultyExpert, "B..../R..../...../...../.....", 2},
		{"expert late placement", DifficultyExpert, "B.B../R.R../B..../...../.....", 3},
		{"expert high mobility", DifficultyExpert, movementBoard, 3},
		{"expert cornered", DifficultyExpert, "BR.RB/RR.../...../...../B...B", 5},
	}
	for _, tc := range cases {
		if got := SearchDepth(cfg, tc.tier, mustBoard(t, tc.board), PlayerBlack); got != tc.want {
			t.Fatalf("%s: expected depth %d, got %d", tc.name, tc.want, got)
		}
	}
}
