package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/rs/zerolog"
)

type trainerStanding struct {
	ID         string                 `json:"id"`
	Tier       string                 `json:"tier"`
	Elo        float64                `json:"elo"`
	Wins       int                    `json:"wins"`
	Losses     int                    `json:"losses"`
	Draws      int                    `json:"draws"`
	Heuristics engine.HeuristicConfig `json:"heuristics"`
}

type standingsFile struct {
	GeneratedAt string            `json:"generated_at"`
	Seed        int64             `json:"seed"`
	Rounds      int               `json:"rounds"`
	Games       int               `json:"games"`
	MaxPlies    int               `json:"max_plies"`
	Standings   []trainerStanding `json:"standings"`
}

func main() {
	level, err := zerolog.ParseLevel(strings.ToLower(getenv("TRAINER_LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Str("service", "trainer").Logger()

	cfg := loadArenaConfig()
	output := getenv("TRAINER_OUTPUT", filepath.Join("logs", "standings.json"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Int64("seed", cfg.Seed).
		Int("rounds", cfg.Rounds).
		Int("mutants", cfg.Mutants).
		Int("max_plies", cfg.MaxPlies).
		Msg("arena starting")

	list, games, err := runArena(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("arena aborted")
		os.Exit(1)
	}
	if err := writeStandings(output, cfg, list, games); err != nil {
		logger.Error().Err(err).Str("path", output).Msg("write standings")
		os.Exit(1)
	}
	logger.Info().Str("path", output).Str("leader", leader(list)).Int("games", games).Msg("arena finished")
}

func loadArenaConfig() arenaConfig {
	seed := int64(getenvInt("TRAINER_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return arenaConfig{
		MaxPlies:         getenvInt("TRAINER_MAX_PLIES", 120),
		EloK:             getenvFloat("TRAINER_ELO_K", 24),
		Rounds:           getenvInt("TRAINER_ROUNDS", 1),
		Mutants:          getenvInt("TRAINER_MUTANTS", 4),
		MutationStrength: getenvFloat("TRAINER_MUTATION_STRENGTH", 0.2),
		MutantTier:       engine.ParseDifficulty(getenv("TRAINER_MUTANT_TIER", "pro")),
		Concurrency:      getenvInt("TRAINER_CONCURRENCY", 4),
		Seed:             seed,
	}
}

func toStandings(list []contender) []trainerStanding {
	out := make([]trainerStanding, 0, len(list))
	for _, c := range list {
		out = append(out, trainerStanding{
			ID:         c.ID,
			Tier:       c.Tier.String(),
			Elo:        c.Elo,
			Wins:       c.Wins,
			Losses:     c.Losses,
			Draws:      c.Draws,
			Heuristics: c.Heuristics,
		})
	}
	return out
}

func writeStandings(path string, cfg arenaConfig, list []contender, games int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(standingsFile{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Seed:        cfg.Seed,
		Rounds:      cfg.Rounds,
		Games:       games,
		MaxPlies:    cfg.MaxPlies,
		Standings:   toStandings(list),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed float64
	if _, err := fmt.Sscanf(value, "%f", &parsed); err != nil {
		return fallback
	}
	return parsed
}
