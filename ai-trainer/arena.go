package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const initialElo = 1500.0

type arenaConfig struct {
	MaxPlies         int
	EloK             float64
	Rounds           int
	Mutants          int
	MutationStrength float64
	MutantTier       engine.Difficulty
	Concurrency      int
	Seed             int64
}

type contender struct {
	ID         string
	Tier       engine.Difficulty
	Heuristics engine.HeuristicConfig
	Elo        float64
	Wins       int
	Losses     int
	Draws      int
}

func (c contender) engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Heuristics = c.Heuristics
	return cfg
}

type matchResult struct {
	ID    uuid.UUID
	Black int
	Red   int
	// Score is the black side's result: 1 win, 0 loss, 0.5 when the ply cap
	// was reached.
	Score float64
	Plies int
}

// initialContenders seeds the arena with one contender per tier on the
// default weights plus cfg.Mutants mutated weight sets.
func initialContenders(cfg arenaConfig, rng *rand.Rand) []contender {
	base := engine.DefaultConfig().Heuristics
	tiers := []engine.Difficulty{
		engine.DifficultyBeginner,
		engine.DifficultyNormal,
		engine.DifficultyPro,
		engine.DifficultyExpert,
	}
	out := make([]contender, 0, len(tiers)+cfg.Mutants)
	for _, tier := range tiers {
		out = append(out, contender{ID: tier.String(), Tier: tier, Heuristics: base, Elo: initialElo})
	}
	for i := 0; i < cfg.Mutants; i++ {
		out = append(out, contender{
			ID:         fmt.Sprintf("%s-mutant-%d", cfg.MutantTier, i+1),
			Tier:       cfg.MutantTier,
			Heuristics: mutateHeuristics(rng, base, cfg.MutationStrength),
			Elo:        initialElo,
		})
	}
	return out
}

// mutateHeuristics scales every weight by a random factor in
// [1-strength, 1+strength]. WinScore stays fixed: it is the terminal sentinel.
func mutateHeuristics(rng *rand.Rand, base engine.HeuristicConfig, strength float64) engine.HeuristicConfig {
	out := base
	mutate := func(v int) int {
		factor := 1 + (rng.Float64()*2-1)*strength
		next := math.Round(float64(v) * factor)
		if math.IsNaN(next) || math.IsInf(next, 0) || next < 1 {
			return v
		}
		return int(next)
	}
	out.RepetitionPenalty = mutate(out.RepetitionPenalty)
	out.PositionalScale = mutate(out.PositionalScale)
	out.Mobility = mutate(out.Mobility)
	out.Own1 = mutate(out.Own1)
	out.Own2 = mutate(out.Own2)
	out.Own3 = mutate(out.Own3)
	out.Opp1 = mutate(out.Opp1)
	out.Opp2 = mutate(out.Opp2)
	out.Opp3 = mutate(out.Opp3)
	out.OpenTwo = mutate(out.OpenTwo)
	out.UrgencyTwo = mutate(out.UrgencyTwo)
	out.UrgencyThree = mutate(out.UrgencyThree)
	out.ForkBonus = mutate(out.ForkBonus)
	return out
}

// pairings lists every ordered pair once, so each contender opens against
// every other one.
func pairings(n int) [][2]int {
	out := make([][2]int, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// playMatch runs one game between two fresh agents. Each match owns its
// state and agents, so matches can run in parallel.
func playMatch(ctx context.Context, black, red contender, maxPlies int, seed int64, logger zerolog.Logger) (matchResult, error) {
	id := uuid.New()
	state := engine.NewGameState()
	matchLogger := logger.With().Str("match", id.String()).Logger()
	agents := map[engine.PlayerColor]*engine.Agent{
		engine.PlayerBlack: engine.NewAgent(state, engine.PlayerBlack, black.Tier,
			engine.WithConfig(black.engineConfig()), engine.WithSeed(seed), engine.WithLogger(matchLogger)),
		engine.PlayerRed: engine.NewAgent(state, engine.PlayerRed, red.Tier,
			engine.WithConfig(red.engineConfig()), engine.WithSeed(seed+1), engine.WithLogger(matchLogger)),
	}

	result := matchResult{ID: id, Score: 0.5}
	for state.TurnCount() < maxPlies && !state.IsOver() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		mover := state.CurrentPlayer()
		move, ok := agents[mover].DecideAndApply()
		if !ok {
			return result, fmt.Errorf("match %s: %s found no move at ply %d", id, mover, state.TurnCount())
		}
		agents[mover.Opponent()].RecordOpponentMove(move)
	}
	result.Plies = state.TurnCount()
	if winner, ok := state.Winner(); ok {
		result.Score = 0
		if winner == engine.PlayerBlack {
			result.Score = 1
		}
	}
	matchLogger.Debug().
		Str("black", black.ID).
		Str("red", red.ID).
		Float64("score", result.Score).
		Int("plies", result.Plies).
		Msg("match finished")
	return result, nil
}

// runRound plays the full round robin concurrently then applies the Elo
// updates in pairing order, so a fixed seed gives fixed ratings.
func runRound(ctx context.Context, list []contender, cfg arenaConfig, round int, logger zerolog.Logger) ([]matchResult, error) {
	pairs := pairings(len(list))
	results := make([]matchResult, len(pairs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxInt(cfg.Concurrency, 1))
	for i, pair := range pairs {
		i, pair := i, pair
		seed := cfg.Seed + int64(round*len(pairs)+i)*2
		group.Go(func() error {
			result, err := playMatch(groupCtx, list[pair[0]], list[pair[1]], cfg.MaxPlies, seed, logger)
			if err != nil {
				return err
			}
			result.Black, result.Red = pair[0], pair[1]
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, result := range results {
		black, red := &list[result.Black], &list[result.Red]
		updateElo(black, red, result.Score, cfg.EloK)
		switch result.Score {
		case 1:
			black.Wins++
			red.Losses++
		case 0:
			black.Losses++
			red.Wins++
		default:
			black.Draws++
			red.Draws++
		}
	}
	return results, nil
}

func runArena(ctx context.Context, cfg arenaConfig, logger zerolog.Logger) ([]contender, int, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	list := initialContenders(cfg, rng)
	games := 0
	for round := 0; round < cfg.Rounds; round++ {
		results, err := runRound(ctx, list, cfg, round, logger)
		if err != nil {
			return list, games, err
		}
		games += len(results)
		logger.Info().Int("round", round+1).Int("games", len(results)).Str("leader", leader(list)).Msg("round finished")
	}
	sortContendersByElo(list)
	return list, games, nil
}

func leader(list []contender) string {
	best := 0
	for i := range list {
		if list[i].Elo > list[best].Elo {
			best = i
		}
	}
	if len(list) == 0 {
		return ""
	}
	return list[best].ID
}

func sortContendersByElo(list []contender) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Elo > list[j].Elo })
}

func updateElo(a *contender, b *contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
