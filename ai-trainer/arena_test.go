package main

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingsCoverEveryOrderedPair(t *testing.T) {
	pairs := pairings(3)
	require.Len(t, pairs, 6)
	seen := map[[2]int]bool{}
	for _, pair := range pairs {
		assert.NotEqual(t, pair[0], pair[1])
		assert.False(t, seen[pair], "duplicate pairing %v", pair)
		seen[pair] = true
	}
	assert.True(t, seen[[2]int{0, 2}])
	assert.True(t, seen[[2]int{2, 0}])
}

func TestUpdateEloConservesRating(t *testing.T) {
	a := contender{Elo: 1600}
	b := contender{Elo: 1400}
	updateElo(&a, &b, 0, 32)
	assert.Less(t, a.Elo, 1600.0)
	assert.Greater(t, b.Elo, 1400.0)
	assert.InDelta(t, 3000.0, a.Elo+b.Elo, 1e-9)
}

func TestMutateHeuristicsKeepsWinScore(t *testing.T) {
	base := engine.DefaultConfig().Heuristics
	rng := rand.New(rand.NewSource(7))
	mutated := mutateHeuristics(rng, base, 0.5)

	assert.Equal(t, base.WinScore, mutated.WinScore)
	assert.NotEqual(t, base, mutated)
	assert.Positive(t, mutated.Opp3)
	assert.InDelta(t, float64(base.Opp3), float64(mutated.Opp3), float64(base.Opp3)*0.5+1)

	same := mutateHeuristics(rng, base, 0)
	assert.Equal(t, base, same)
}

func TestPlayMatchPlyCapIsDraw(t *testing.T) {
	c := contender{ID: "beginner", Tier: engine.DifficultyBeginner, Heuristics: engine.DefaultConfig().Heuristics}
	result, err := playMatch(context.Background(), c, c, 4, 1, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Plies)
	assert.Equal(t, 0.5, result.Score)
}

func TestPlayMatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := contender{ID: "beginner", Tier: engine.DifficultyBeginner, Heuristics: engine.DefaultConfig().Heuristics}
	_, err := playMatch(ctx, c, c, 120, 1, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayMatchFinishes(t *testing.T) {
	black := contender{ID: "pro", Tier: engine.DifficultyPro, Heuristics: engine.DefaultConfig().Heuristics}
	red := contender{ID: "beginner", Tier: engine.DifficultyBeginner, Heuristics: engine.DefaultConfig().Heuristics}
	result, err := playMatch(context.Background(), black, red, 120, 3, zerolog.Nop())
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Plies, 120)
	assert.Contains(t, []float64{0, 0.5, 1}, result.Score)
	if result.Score != 0.5 {
		assert.GreaterOrEqual(t, result.Plies, 7, "no one can align four before their fourth piece")
	}
}

func TestRunArenaShortGamesAreDraws(t *testing.T) {
	cfg := arenaConfig{MaxPlies: 6, EloK: 24, Rounds: 1, MutantTier: engine.DifficultyBeginner, Concurrency: 4, Seed: 11}
	list, games, err := runArena(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 12, games)

	total := 0.0
	for _, c := range list {
		assert.Equal(t, 6, c.Draws, c.ID)
		assert.Zero(t, c.Wins+c.Losses, c.ID)
		total += c.Elo
	}
	assert.InDelta(t, 4*initialElo, total, 1e-6)
	assert.True(t, math.Abs(list[0].Elo-initialElo) < 1e-6, "equal-rated draws leave ratings unchanged")
}

func TestWriteStandings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "standings.json")
	cfg := arenaConfig{Seed: 5, Rounds: 1, MaxPlies: 10}
	list := []contender{{ID: "normal", Tier: engine.DifficultyNormal, Elo: 1510, Wins: 1}}
	require.NoError(t, writeStandings(path, cfg, list, 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file standingsFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, int64(5), file.Seed)
	require.Len(t, file.Standings, 1)
	assert.Equal(t, "normal", file.Standings[0].Tier)
	assert.Equal(t, 1, file.Standings[0].Wins)
}
