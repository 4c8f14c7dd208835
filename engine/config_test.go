package engine

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"beginner":    DifficultyBeginner,
		"Debutant":    DifficultyBeginner,
		"1":           DifficultyBeginner,
		"normal":      DifficultyNormal,
		"standard":    DifficultyNormal,
		"2":           DifficultyNormal,
		" PRO ":       DifficultyPro,
		"3":           DifficultyPro,
		"4":           DifficultyPro,
		"expert":      DifficultyExpert,
		"teacher":     DifficultyExpert,
		"5":           DifficultyExpert,
		"42":          DifficultyExpert,
		"-3":          DifficultyBeginner,
		"":            DifficultyNormal,
		"grandmaster": DifficultyNormal,
		"2.5":         DifficultyNormal,
	}
	for raw, want := range cases {
		if got := ParseDifficulty(raw); got != want {
			t.Fatalf("ParseDifficulty(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestResolveConfigFillsDefaults(t *testing.T) {
	resolved := ResolveConfig(Config{
		Tiers:      map[string]TierConfig{"pro": {Depth: 4}},
		Heuristics: HeuristicConfig{Own3: 1500},
	})
	defaults := DefaultConfig()
	if tier := resolved.Tier(DifficultyPro); tier.Depth != 4 || tier.PlacementDepth != 2 {
		t.Fatalf("unexpected pro tier %+v", tier)
	}
	if resolved.Tier(DifficultyBeginner) != defaults.Tier(DifficultyBeginner) {
		t.Fatalf("missing tier not filled")
	}
	if resolved.Heuristics.Own3 != 1500 || resolved.Heuristics.WinScore != defaults.Heuristics.WinScore {
		t.Fatalf("heuristics not merged: %+v", resolved.Heuristics)
	}
	if resolved.TopCandidates != 3 || resolved.RecentWindow != 3 || resolved.ExpertMaxDepth != 5 {
		t.Fatalf("scalar defaults not filled: %+v", resolved)
	}
	if resolved.Style != defaults.Style {
		t.Fatalf("style defaults not filled")
	}
}

func TestResolveConfigCapsExpertDepth(t *testing.T) {
	resolved := ResolveConfig(Config{ExpertMaxDepth: 9, ExpertMinDepth: 7, BluffProbability: 2})
	if resolved.ExpertMaxDepth != 5 || resolved.ExpertMinDepth != 3 {
		t.Fatalf("expert depth not clamped: %d..%d", resolved.ExpertMinDepth, resolved.ExpertMaxDepth)
	}
	if resolved.BluffProbability != DefaultConfig().BluffProbability {
		t.Fatalf("bluff probability out of range kept: %v", resolved.BluffProbability)
	}

	resolved = ResolveConfig(Config{
		ExpertEarlyPlacement: 9,
		ExpertLatePlacement:  9,
		Tiers:                map[string]TierConfig{"pro": {Depth: 12, PlacementDepth: 8}},
	})
	if resolved.ExpertEarlyPlacement != 5 || resolved.ExpertLatePlacement != 5 {
		t.Fatalf("expert placement depth not clamped: early=%d late=%d", resolved.ExpertEarlyPlacement, resolved.ExpertLatePlacement)
	}
	if pro := resolved.Tier(DifficultyPro); pro.Depth != 5 || pro.PlacementDepth != 5 {
		t.Fatalf("pro tier depth not clamped: %+v", pro)
	}

	placement := mustBoard(t, "B..../...../..R../...../.....")
	movement := mustBoard(t, "B.B.B/...../.B.R./...../R.R.R")
	for _, tier := range []Difficulty{DifficultyBeginner, DifficultyNormal, DifficultyPro, DifficultyExpert} {
		for _, board := range []Board{placement, movement} {
			if depth := SearchDepth(resolved, tier, board, PlayerBlack); depth < 1 || depth > 5 {
				t.Fatalf("%s searches at depth %d on %s", tier, depth, board)
			}
		}
	}
}

func TestConfigStoreReturnsCopies(t *testing.T) {
	store := &ConfigStore{config: DefaultConfig()}
	cfg := store.Get()
	cfg.Tiers["normal"] = TierConfig{Depth: 9, PlacementDepth: 9}
	if store.Get().Tier(DifficultyNormal).Depth != 2 {
		t.Fatalf("mutating a snapshot changed the store")
	}
	cfg.TopCandidates = 1
	store.Update(cfg)
	if store.Get().TopCandidates != 1 {
		t.Fatalf("update not applied")
	}
}
