package engine

import "testing"

func TestTTStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1<<8, 2)
	board := mustBoard(t, movementBoard)
	key := NodeKey(board, PlayerBlack)
	tt.Store(key, 3, 42, TTExact)

	entry, ok := tt.Probe(key)
	if !ok || entry.Score != 42 || entry.Depth != 3 || entry.Flag != TTExact {
		t.Fatalf("unexpected probe result %+v %v", entry, ok)
	}
	if _, ok := tt.Probe(NodeKey(board, PlayerRed)); ok {
		t.Fatalf("side to move must be part of the key")
	}
	if tt.Count() != 1 {
		t.Fatalf("expected one entry, got %d", tt.Count())
	}
}

func TestTTKeepsDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(16, 1)
	tt.Store(7, 4, 10, TTLower)
	tt.Store(7, 2, 99, TTExact)
	if entry, _ := tt.Probe(7); entry.Depth != 4 || entry.Score != 10 {
		t.Fatalf("shallower result overwrote deeper one: %+v", entry)
	}
	tt.Store(7, 5, 11, TTUpper)
	if entry, _ := tt.Probe(7); entry.Depth != 5 || entry.Flag != TTUpper {
		t.Fatalf("deeper result not stored: %+v", entry)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTranspositionTable(10, 2)
	if tt.Capacity() != 32 {
		t.Fatalf("expected size rounded to 16 buckets of 2, got %d", tt.Capacity())
	}
	for i := uint64(0); i < 20; i++ {
		tt.Store(i, 1, int(i), TTExact)
	}
	tt.Clear()
	if tt.Count() != 0 {
		t.Fatalf("expected empty table after clear")
	}
	if _, ok := tt.Probe(3); ok {
		t.Fatalf("probe hit after clear")
	}
}

func TestApplyTTEntryBounds(t *testing.T) {
	alpha, beta := -100, 100
	if _, ret, _ := applyTTEntry(TTEntry{Depth: 1, Score: 5, Flag: TTExact}, 2, &alpha, &beta, nil); ret {
		t.Fatalf("shallower entry must not be used")
	}
	if _, ret, v := applyTTEntry(TTEntry{Depth: 2, Score: 5, Flag: TTExact}, 2, &alpha, &beta, nil); !ret || v != 5 {
		t.Fatalf("exact entry must return its score")
	}
	if _, ret, _ := applyTTEntry(TTEntry{Depth: 3, Score: 20, Flag: TTLower}, 2, &alpha, &beta, nil); ret || alpha != 20 {
		t.Fatalf("lower bound must raise alpha, got %d", alpha)
	}
	if _, ret, _ := applyTTEntry(TTEntry{Depth: 3, Score: 50, Flag: TTUpper}, 2, &alpha, &beta, nil); ret || beta != 50 {
		t.Fatalf("upper bound must lower beta, got %d", beta)
	}
	stats := &SearchStats{}
	if _, ret, v := applyTTEntry(TTEntry{Depth: 3, Score: 10, Flag: TTUpper}, 2, &alpha, &beta, stats); !ret || v != 10 || stats.Cutoffs != 1 {
		t.Fatalf("crossing bounds must cut off, got ret=%v v=%d", ret, v)
	}
}
