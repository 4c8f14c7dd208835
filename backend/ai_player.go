package main

import (
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/rs/zerolog"
)

// AIPlayer adapts an engine agent to the game loop. Each AI seat owns its
// own agent, so AI-vs-AI matches never share search state.
type AIPlayer struct {
	agent *engine.Agent
	color engine.PlayerColor
}

func NewAIPlayer(state *engine.GameState, color engine.PlayerColor, level engine.Difficulty, logger zerolog.Logger) *AIPlayer {
	agent := engine.NewAgent(state, color, level,
		engine.WithLogger(logger.With().Str("seat", color.String()).Logger()),
		engine.WithSeed(time.Now().UnixNano()+int64(color)),
	)
	return &AIPlayer{agent: agent, color: color}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Observe(move engine.Move) {
	a.agent.RecordOpponentMove(move)
}

// Play decides and applies one move on the shared state.
func (a *AIPlayer) Play() (engine.Move, engine.Decision, bool) {
	move, ok := a.agent.DecideAndApply()
	return move, a.agent.LastDecision(), ok
}

// Replay feeds an existing match history into a fresh agent.
func (a *AIPlayer) Replay(entries []HistoryEntry) {
	ctx := a.agent.Context()
	for _, entry := range entries {
		if entry.Player == a.color {
			ctx.Log.Push(engine.LogEntry{Move: entry.Move, Player: entry.Player})
			continue
		}
		a.agent.RecordOpponentMove(entry.Move)
	}
}

// suggestMove asks an expert agent for the best move of the side to move,
// working on a copy of the state.
func suggestMove(state *engine.GameState, history []HistoryEntry, seed int64) (engine.Decision, bool) {
	clone := state.Clone()
	me := clone.CurrentPlayer()
	hint := &AIPlayer{
		agent: engine.NewAgent(clone, me, engine.DifficultyExpert, engine.WithSeed(seed)),
		color: me,
	}
	hint.Replay(history)
	return hint.agent.Decide()
}
