package main

import "github.com/Ardou0/Teeko-IA41/engine"

type HistoryEntry struct {
	Move      engine.Move
	Player    engine.PlayerColor
	ElapsedMs float64
	IsAi      bool
	Depth     int
	Reason    string
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// LogEntries converts the history into the engine's move log form.
func (h MoveHistory) LogEntries() []engine.LogEntry {
	out := make([]engine.LogEntry, 0, len(h.entries))
	for _, entry := range h.entries {
		out = append(out, engine.LogEntry{Move: entry.Move, Player: entry.Player})
	}
	return out
}
