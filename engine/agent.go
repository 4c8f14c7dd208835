package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

type DecisionReason string

const (
	ReasonWin    DecisionReason = "win"
	ReasonBlock  DecisionReason = "block"
	ReasonSearch DecisionReason = "search"
)

type Decision struct {
	Move       Move
	Score      int
	Depth      int
	Reason     DecisionReason
	Bluffed    bool
	Candidates int
	Bias       StyleBias
	Stats      SearchStats
}

type scoredMove struct {
	move  Move
	score int
}

// Agent plays one colour of one GameState. It is not safe for concurrent
// use; the host serializes calls into the shared state.
type Agent struct {
	state  *GameState
	me     PlayerColor
	tier   Difficulty
	cfg    Config
	ctx    *AgentContext
	rng    *rand.Rand
	logger zerolog.Logger
	last   Decision
}

type Option func(*Agent)

// WithRand injects the random source used for tie-breaks and bluffs.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

func WithConfig(cfg Config) Option {
	return func(a *Agent) { a.cfg = ResolveConfig(cfg) }
}

func WithContext(ctx *AgentContext) Option {
	return func(a *Agent) { a.ctx = ctx }
}

func NewAgent(state *GameState, me PlayerColor, tier Difficulty, opts ...Option) *Agent {
	a := &Agent{
		state:  state,
		me:     me,
		tier:   tier,
		cfg:    GetConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if a.ctx == nil {
		a.ctx = NewAgentContext(a.cfg)
	}
	return a
}

func (a *Agent) Player() PlayerColor    { return a.me }
func (a *Agent) Tier() Difficulty       { return a.tier }
func (a *Agent) Context() *AgentContext { return a.ctx }
func (a *Agent) LastDecision() Decision { return a.last }

// RecordOpponentMove must be called after every opposing move, before the
// agent decides again.
func (a *Agent) RecordOpponentMove(move Move) {
	if move == nil {
		return
	}
	a.ctx.Log.Push(LogEntry{Move: move, Player: a.me.Opponent()})
	a.ctx.LastOpponentMove = move
}

// DecideAndApply picks a move and plays it on the game state. It returns
// false when the game is over, it is not this agent's turn, or no legal move
// exists.
func (a *Agent) DecideAndApply() (Move, bool) {
	if a.state.IsOver() || a.state.CurrentPlayer() != a.me {
		return nil, false
	}
	decision, ok := a.Decide()
	if !ok {
		return nil, false
	}
	if ok, reason := a.state.TryApply(decision.Move); !ok {
		a.logger.Error().Str("move", decision.Move.String()).Str("reason", reason).Msg("chosen move rejected")
		return nil, false
	}
	a.ctx.Log.Push(LogEntry{Move: decision.Move, Player: a.me})
	if a.tier.Adaptive() {
		a.ctx.Recent.Push(a.state.Board())
	}
	return decision.Move, true
}

// Decide computes the move for the current board without playing it.
func (a *Agent) Decide() (Decision, bool) {
	board := a.state.Board()
	moves := GenerateMoves(board, a.me)
	if len(moves) == 0 {
		return Decision{}, false
	}
	a.ctx.TT.Clear()
	eval := a.evaluator()
	decision := Decision{Bias: eval.Bias}

	if wins := WinningMoves(board, a.me); len(wins) > 0 {
		decision.Move = wins[0]
		decision.Score = eval.WinScore()
		decision.Reason = ReasonWin
		decision.Candidates = len(moves)
		a.record(decision)
		return decision, true
	}

	candidates := moves
	if blockers := BlockingMoves(board, a.me); len(blockers) > 0 {
		if a.tier.Adaptive() && a.rng.Float64() < a.cfg.BluffProbability {
			decision.Bluffed = true
		} else {
			candidates = blockers
			decision.Reason = ReasonBlock
		}
	}
	if decision.Reason == "" {
		decision.Reason = ReasonSearch
	}

	depth := SearchDepth(a.cfg, a.tier, board, a.me)
	searcher := NewSearcher(eval, a.me, a.ctx.TT)
	scored := a.scoreCandidates(searcher, board, candidates, depth)

	chosen := a.selectMove(board, scored)
	decision.Move = chosen.move
	decision.Score = chosen.score
	decision.Depth = depth
	decision.Candidates = len(candidates)
	decision.Stats = searcher.Stats
	a.record(decision)
	return decision, true
}

// scoreCandidates searches every candidate and adds the fork bonus to moves
// that open at least two new three-of-four patterns at once.
func (a *Agent) scoreCandidates(searcher *Searcher, board Board, candidates []Move, depth int) []scoredMove {
	openBefore := CountPatterns(board, a.me).OwnOpen3
	scored := make([]scoredMove, 0, len(candidates))
	for _, move := range candidates {
		score := searcher.ScoreMove(board, move, depth)
		if CountPatterns(ApplyMove(board, move, a.me), a.me).OwnOpen3-openBefore >= 2 {
			score += a.cfg.Heuristics.ForkBonus
		}
		scored = append(scored, scoredMove{move: move, score: score})
	}
	return scored
}

// BlockingMoves returns the moves of player that occupy a cell where the
// opponent would complete a pattern on its next move.
func BlockingMoves(board Board, player PlayerColor) []Move {
	threats := NextTurnThreats(board, player.Opponent())
	if len(threats) == 0 {
		return nil
	}
	var targets [CellCount]bool
	for _, threat := range threats {
		targets[threat.Target()] = true
	}
	var blockers []Move
	for _, move := range GenerateMoves(board, player) {
		if targets[move.Target()] {
			blockers = append(blockers, move)
		}
	}
	return blockers
}

func (a *Agent) evaluator() *Evaluator {
	eval := NewEvaluator(a.cfg.Heuristics)
	if report := a.ctx.Style(); report.Sufficient {
		eval.Bias = BiasFromProfile(report.Profile(a.me.Opponent()), a.cfg.Style)
	}
	if a.tier.Adaptive() {
		eval.Adaptive = true
		eval.Recent = a.ctx.Recent
		eval.LastOpponentTarget = a.ctx.LastOpponentTarget()
	}
	return eval
}

func (a *Agent) selectMove(board Board, scored []scoredMove) scoredMove {
	if !a.tier.Adaptive() {
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
		// Every move tied at the best score stays eligible even past top-K.
		ties := 1
		for ties < len(scored) && scored[ties].score == scored[0].score {
			ties++
		}
		k := maxInt(a.cfg.TopCandidates, ties)
		if k > len(scored) {
			k = len(scored)
		}
		return scored[a.rng.Intn(k)]
	}

	best := -searchInf
	for _, s := range scored {
		if s.score > best {
			best = s.score
		}
	}
	var top, fresh []scoredMove
	for _, s := range scored {
		if s.score != best {
			continue
		}
		top = append(top, s)
		if !a.ctx.Recent.Contains(ApplyMove(board, s.move, a.me)) {
			fresh = append(fresh, s)
		}
	}
	if len(fresh) > 0 {
		top = fresh
	}
	return top[a.rng.Intn(len(top))]
}

func (a *Agent) record(d Decision) {
	a.last = d
	a.logger.Debug().
		Str("player", a.me.String()).
		Str("tier", a.tier.String()).
		Str("reason", string(d.Reason)).
		Int("depth", d.Depth).
		Int("candidates", d.Candidates).
		Int64("nodes", d.Stats.Nodes).
		Int64("tt_hits", d.Stats.TTHits).
		Int64("cutoffs", d.Stats.Cutoffs).
		Int("score", d.Score).
		Bool("bluff", d.Bluffed).
		Str("move", d.Move.String()).
		Msg("decision")
}
