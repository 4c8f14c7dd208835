package engine

import (
	"strconv"
	"strings"
	"sync"
)

type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyNormal
	DifficultyPro
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyNormal:
		return "normal"
	case DifficultyPro:
		return "pro"
	case DifficultyExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// Adaptive is true for the tier that profiles its opponent, bluffs and
// avoids repeating positions.
func (d Difficulty) Adaptive() bool {
	return d == DifficultyExpert
}

// ParseDifficulty never fails: unknown input falls back to DifficultyNormal.
func ParseDifficulty(raw string) Difficulty {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "beginner", "debutant", "débutant", "easy":
		return DifficultyBeginner
	case "normal", "standard", "":
		return DifficultyNormal
	case "pro", "hard":
		return DifficultyPro
	case "expert", "teacher", "adaptive":
		return DifficultyExpert
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return DifficultyNormal
	}
	switch {
	case n <= 1:
		return DifficultyBeginner
	case n == 2:
		return DifficultyNormal
	case n <= 4:
		return DifficultyPro
	default:
		return DifficultyExpert
	}
}

type TierConfig struct {
	Depth          int `json:"depth"`
	PlacementDepth int `json:"placement_depth"`
}

type HeuristicConfig struct {
	WinScore          int `json:"win_score"`
	RepetitionPenalty int `json:"repetition_penalty"`
	PositionalScale   int `json:"positional_scale"`
	Mobility          int `json:"mobility"`
	Own1              int `json:"own_1"`
	Own2              int `json:"own_2"`
	Own3              int `json:"own_3"`
	Opp1              int `json:"opp_1"`
	Opp2              int `json:"opp_2"`
	Opp3              int `json:"opp_3"`
	OpenTwo           int `json:"open_two"`
	UrgencyTwo        int `json:"urgency_two"`
	UrgencyThree      int `json:"urgency_three"`
	ForkBonus         int `json:"fork_bonus"`
}

type StyleConfig struct {
	AggressionThreshold  float64 `json:"aggression_threshold"`
	AggressionMultiplier float64 `json:"aggression_multiplier"`
	DefensiveThreshold   float64 `json:"defensive_threshold"`
	ForkMultiplier       float64 `json:"fork_multiplier"`
}

type Config struct {
	Tiers                map[string]TierConfig `json:"tiers"`
	ExpertMaxDepth       int                   `json:"expert_max_depth"`
	ExpertMinDepth       int                   `json:"expert_min_depth"`
	ExpertEarlyPlacement int                   `json:"expert_early_placement_depth"`
	ExpertLatePlacement  int                   `json:"expert_late_placement_depth"`
	ExpertMobilityStep   int                   `json:"expert_mobility_step"`
	BluffProbability     float64               `json:"bluff_probability"`
	TopCandidates        int                   `json:"top_candidates"`
	RecentWindow         int                   `json:"recent_window"`
	TTSize               int                   `json:"tt_size"`
	TTBuckets            int                   `json:"tt_buckets"`
	Heuristics           HeuristicConfig       `json:"heuristics"`
	Style                StyleConfig           `json:"style"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// Non-adaptive tiers: shallow while the placement branching factor is large.
		Tiers: map[string]TierConfig{
			DifficultyBeginner.String(): {Depth: 1, PlacementDepth: 1},
			DifficultyNormal.String():   {Depth: 2, PlacementDepth: 1},
			DifficultyPro.String():      {Depth: 3, PlacementDepth: 2},
		},
		ExpertMaxDepth:       5,
		ExpertMinDepth:       3,
		ExpertEarlyPlacement: 2,
		ExpertLatePlacement:  3,
		ExpertMobilityStep:   8,
		BluffProbability:     0.3,
		TopCandidates:        3,
		RecentWindow:         3,
		TTSize:               1 << 14,
		TTBuckets:            2,
		Heuristics: HeuristicConfig{
			WinScore:          1_000_000,
			RepetitionPenalty: 500,
			PositionalScale:   5,
			Mobility:          10,
			Own1:              20,
			Own2:              200,
			Own3:              1000,
			Opp1:              20,
			Opp2:              200,
			Opp3:              1000,
			OpenTwo:           100,
			UrgencyTwo:        500,
			UrgencyThree:      2000,
			ForkBonus:         1500,
		},
		Style: StyleConfig{
			AggressionThreshold:  0.5,
			AggressionMultiplier: 1.5,
			DefensiveThreshold:   0.5,
			ForkMultiplier:       1.5,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func SetConfig(config Config) {
	configStore.Update(config)
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.clone()
}

func (c *ConfigStore) Update(newConfig Config) {
	resolved := ResolveConfig(newConfig)
	c.mu.Lock()
	c.config = resolved
	c.mu.Unlock()
}

func (c Config) clone() Config {
	out := c
	out.Tiers = make(map[string]TierConfig, len(c.Tiers))
	for name, tier := range c.Tiers {
		out.Tiers[name] = tier
	}
	return out
}

// Tier returns the depth table entry for a non-adaptive difficulty.
func (c Config) Tier(d Difficulty) TierConfig {
	if tier, ok := c.Tiers[d.String()]; ok {
		return tier
	}
	return DefaultConfig().Tiers[DifficultyNormal.String()]
}

// ResolveConfig fills zero fields with their defaults.
func ResolveConfig(config Config) Config {
	defaults := DefaultConfig()
	out := config.clone()
	if out.ExpertMaxDepth <= 0 || out.ExpertMaxDepth > defaults.ExpertMaxDepth {
		out.ExpertMaxDepth = defaults.ExpertMaxDepth
	}
	for name, tier := range defaults.Tiers {
		current, ok := out.Tiers[name]
		if !ok {
			out.Tiers[name] = tier
			continue
		}
		if current.Depth <= 0 {
			current.Depth = tier.Depth
		}
		if current.PlacementDepth <= 0 {
			current.PlacementDepth = minInt(tier.PlacementDepth, current.Depth)
		}
		out.Tiers[name] = current
	}
	// No tier may search deeper than the expert cap.
	for name, current := range out.Tiers {
		current.Depth = clampInt(current.Depth, 1, out.ExpertMaxDepth)
		current.PlacementDepth = clampInt(current.PlacementDepth, 1, out.ExpertMaxDepth)
		out.Tiers[name] = current
	}
	if out.ExpertMinDepth <= 0 || out.ExpertMinDepth > out.ExpertMaxDepth {
		out.ExpertMinDepth = minInt(defaults.ExpertMinDepth, out.ExpertMaxDepth)
	}
	if out.ExpertEarlyPlacement <= 0 {
		out.ExpertEarlyPlacement = defaults.ExpertEarlyPlacement
	}
	if out.ExpertLatePlacement <= 0 {
		out.ExpertLatePlacement = defaults.ExpertLatePlacement
	}
	out.ExpertEarlyPlacement = minInt(out.ExpertEarlyPlacement, out.ExpertMaxDepth)
	out.ExpertLatePlacement = minInt(out.ExpertLatePlacement, out.ExpertMaxDepth)
	if out.ExpertMobilityStep <= 0 {
		out.ExpertMobilityStep = defaults.ExpertMobilityStep
	}
	if out.BluffProbability < 0 || out.BluffProbability > 1 {
		out.BluffProbability = defaults.BluffProbability
	}
	if out.TopCandidates <= 0 {
		out.TopCandidates = defaults.TopCandidates
	}
	if out.RecentWindow <= 0 {
		out.RecentWindow = defaults.RecentWindow
	}
	if out.TTSize <= 0 {
		out.TTSize = defaults.TTSize
	}
	if out.TTBuckets <= 0 {
		out.TTBuckets = defaults.TTBuckets
	}
	out.Heuristics = resolvedHeuristicConfig(out.Heuristics)
	out.Style = resolvedStyleConfig(out.Style)
	return out
}

func resolvedHeuristicConfig(h HeuristicConfig) HeuristicConfig {
	defaults := DefaultConfig().Heuristics
	if h == (HeuristicConfig{}) {
		return defaults
	}
	fill := func(value *int, fallback int) {
		if *value <= 0 {
			*value = fallback
		}
	}
	fill(&h.WinScore, defaults.WinScore)
	fill(&h.RepetitionPenalty, defaults.RepetitionPenalty)
	fill(&h.PositionalScale, defaults.PositionalScale)
	fill(&h.Mobility, defaults.Mobility)
	fill(&h.Own1, defaults.Own1)
	fill(&h.Own2, defaults.Own2)
	fill(&h.Own3, defaults.Own3)
	fill(&h.Opp1, defaults.Opp1)
	fill(&h.Opp2, defaults.Opp2)
	fill(&h.Opp3, defaults.Opp3)
	fill(&h.OpenTwo, defaults.OpenTwo)
	fill(&h.UrgencyTwo, defaults.UrgencyTwo)
	fill(&h.UrgencyThree, defaults.UrgencyThree)
	fill(&h.ForkBonus, defaults.ForkBonus)
	return h
}

func resolvedStyleConfig(s StyleConfig) StyleConfig {
	defaults := DefaultConfig().Style
	if s.AggressionThreshold <= 0 || s.AggressionThreshold > 1 {
		s.AggressionThreshold = defaults.AggressionThreshold
	}
	if s.AggressionMultiplier <= 0 {
		s.AggressionMultiplier = defaults.AggressionMultiplier
	}
	if s.DefensiveThreshold <= 0 || s.DefensiveThreshold > 1 {
		s.DefensiveThreshold = defaults.DefensiveThreshold
	}
	if s.ForkMultiplier <= 0 {
		s.ForkMultiplier = defaults.ForkMultiplier
	}
	return s
}

func minInt(values ...int) int {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}
