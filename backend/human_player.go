package main

import "github.com/Ardou0/Teeko-IA41/engine"

// HumanPlayer is a seat filled through POST /api/move; the tick loop never
// plays for it.
type HumanPlayer struct{}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) Observe(engine.Move) {}
