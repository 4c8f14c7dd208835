package main

import (
	"sync"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GameController serializes every call into the match; the engine state is
// not safe for concurrent use.
type GameController struct {
	mu   sync.Mutex
	game Game
}

func NewGameController(settings GameSettings, logger zerolog.Logger) *GameController {
	return &GameController{game: NewGame(settings, logger)}
}

func (gc *GameController) ApplyHumanMove(move engine.Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.Started() || gc.game.state.IsOver() {
		return errNoMatch
	}
	if !gc.game.CurrentPlayerIsHuman() {
		return errNotHumanTurn
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *GameController) State() *engine.GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) MatchID() uuid.UUID {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ID()
}

func (gc *GameController) Started() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Started()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) Hint() (engine.Decision, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Hint()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.UpdateSettings(update)
}

func (gc *GameController) ResetForConfigChange() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.ResetForConfigChange()
}
