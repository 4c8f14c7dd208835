package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	errNotHumanTurn = errors.New("not human turn")
	errNoMatch      = errors.New("no match running")
	errUnknownMode  = errors.New("unknown mode")
	errIllegalMove  = errors.New("illegal move")
)

type Game struct {
	id          uuid.UUID
	settings    GameSettings
	state       *engine.GameState
	history     MoveHistory
	started     bool
	blackPlayer IPlayer
	redPlayer   IPlayer
	turnStart   time.Time
	logger      zerolog.Logger
}

func NewGame(settings GameSettings, logger zerolog.Logger) Game {
	g := Game{logger: logger, state: engine.NewGameState()}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.id = uuid.New()
	g.settings = settings
	g.state.Reset()
	if settings.RedStarts {
		g.state.SwitchPlayer()
	}
	g.history.Clear()
	g.started = false
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.turnStart = time.Now()
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) Started() bool {
	return g.started
}

func (g *Game) State() *engine.GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove plays a human move for the side to move.
func (g *Game) TryApplyMove(move engine.Move) error {
	if !g.started || g.state.IsOver() {
		return errNoMatch
	}
	mover := g.state.CurrentPlayer()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	if ok, reason := g.state.TryApply(move); !ok {
		return fmt.Errorf("%w: %s", errIllegalMove, reason)
	}
	g.commit(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs})
	return nil
}

// Tick lets the AI play when it is its turn. It reports whether a move was
// applied.
func (g *Game) Tick() bool {
	if !g.started || g.state.IsOver() {
		return false
	}
	ai, ok := g.currentPlayer().(*AIPlayer)
	if !ok {
		return false
	}
	mover := g.state.CurrentPlayer()
	start := time.Now()
	move, decision, applied := ai.Play()
	if !applied {
		g.logger.Warn().Str("player", mover.String()).Str("board", g.state.Board().String()).Msg("ai found no move")
		return false
	}
	g.commit(HistoryEntry{
		Move:      move,
		Player:    mover,
		ElapsedMs: float64(time.Since(start).Milliseconds()),
		IsAi:      true,
		Depth:     decision.Depth,
		Reason:    string(decision.Reason),
	})
	return true
}

func (g *Game) commit(entry HistoryEntry) {
	g.history.Push(entry)
	g.playerForColor(entry.Player.Opponent()).Observe(entry.Move)
	g.turnStart = time.Now()
	g.logMovePlayed(entry)
	if winner, over := g.state.Winner(); over {
		g.logWin(winner)
	}
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.CurrentPlayer())
}

func (g *Game) playerForColor(color engine.PlayerColor) IPlayer {
	if color == engine.PlayerBlack {
		return g.blackPlayer
	}
	return g.redPlayer
}

func (g *Game) createPlayers() {
	g.blackPlayer = g.newPlayer(engine.PlayerBlack)
	g.redPlayer = g.newPlayer(engine.PlayerRed)
}

func (g *Game) newPlayer(color engine.PlayerColor) IPlayer {
	if g.settings.TypeOf(color) == PlayerHuman {
		return NewHumanPlayer()
	}
	return NewAIPlayer(g.state, color, g.settings.LevelOf(color), g.logger)
}

// ResetForConfigChange rebuilds the AI seats so they pick up the new engine
// config, keeping the board and replaying the history into them.
func (g *Game) ResetForConfigChange() {
	g.createPlayers()
	entries := g.history.All()
	for _, player := range []IPlayer{g.blackPlayer, g.redPlayer} {
		if ai, ok := player.(*AIPlayer); ok {
			ai.Replay(entries)
		}
	}
}

// UpdateSettings swaps the seats without touching the board.
func (g *Game) UpdateSettings(settings GameSettings) {
	settings.RedStarts = g.settings.RedStarts
	g.settings = settings
	g.ResetForConfigChange()
}

func (g *Game) Hint() (engine.Decision, error) {
	if !g.started || g.state.IsOver() {
		return engine.Decision{}, errNoMatch
	}
	decision, ok := suggestMove(g.state, g.history.All(), time.Now().UnixNano())
	if !ok {
		return engine.Decision{}, errNoMatch
	}
	return decision, nil
}

func (g *Game) logMatchup() {
	label := func(t PlayerType, level engine.Difficulty) string {
		if t == PlayerAI {
			return "ai/" + level.String()
		}
		return "human"
	}
	g.logger.Info().
		Str("match", g.id.String()).
		Str("black", label(g.settings.BlackType, g.settings.BlackLevel)).
		Str("red", label(g.settings.RedType, g.settings.RedLevel)).
		Str("first", g.state.CurrentPlayer().String()).
		Msg("new match")
}

func (g *Game) logMovePlayed(entry HistoryEntry) {
	g.logger.Debug().
		Str("match", g.id.String()).
		Str("player", entry.Player.String()).
		Str("move", entry.Move.String()).
		Bool("ai", entry.IsAi).
		Float64("elapsed_ms", entry.ElapsedMs).
		Int("turn", g.state.TurnCount()).
		Msg("move played")
}

func (g *Game) logWin(player engine.PlayerColor) {
	g.logger.Info().
		Str("match", g.id.String()).
		Str("winner", player.String()).
		Int("turns", g.state.TurnCount()).
		Msg("match over")
}
