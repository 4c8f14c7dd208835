package main

import (
	"fmt"
	"strings"

	"github.com/Ardou0/Teeko-IA41/engine"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BlackType  PlayerType
	RedType    PlayerType
	BlackLevel engine.Difficulty
	RedLevel   engine.Difficulty
	RedStarts  bool
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BlackType:  PlayerHuman,
		RedType:    PlayerAI,
		BlackLevel: engine.DifficultyNormal,
		RedLevel:   engine.DifficultyNormal,
	}
}

func (s GameSettings) TypeOf(color engine.PlayerColor) PlayerType {
	if color == engine.PlayerBlack {
		return s.BlackType
	}
	return s.RedType
}

func (s GameSettings) LevelOf(color engine.PlayerColor) engine.Difficulty {
	if color == engine.PlayerBlack {
		return s.BlackLevel
	}
	return s.RedLevel
}

type GameSettingsDTO struct {
	Mode       string `json:"mode"`
	BlackLevel string `json:"black_level,omitempty"`
	RedLevel   string `json:"red_level,omitempty"`
	WhoStarts  string `json:"who_starts,omitempty"`
	// HumanPlayer picks the human side in human_vs_ai: "black" (default) or "red".
	HumanPlayer string `json:"human_player,omitempty"`
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) (GameSettings, error) {
	settings := base
	switch strings.ToLower(dto.Mode) {
	case "", "human_vs_ai", "ai_vs_human":
		if strings.EqualFold(dto.HumanPlayer, "red") {
			settings.BlackType = PlayerAI
			settings.RedType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.RedType = PlayerAI
		}
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.RedType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.RedType = PlayerHuman
	default:
		return base, fmt.Errorf("mode %q: %w", dto.Mode, errUnknownMode)
	}
	if dto.BlackLevel != "" {
		settings.BlackLevel = engine.ParseDifficulty(dto.BlackLevel)
	}
	if dto.RedLevel != "" {
		settings.RedLevel = engine.ParseDifficulty(dto.RedLevel)
	}
	switch strings.ToLower(dto.WhoStarts) {
	case "red":
		settings.RedStarts = true
	case "black":
		settings.RedStarts = false
	}
	return settings, nil
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "human_vs_ai"
	human := ""
	switch {
	case settings.BlackType == PlayerAI && settings.RedType == PlayerAI:
		mode = "ai_vs_ai"
	case settings.BlackType == PlayerHuman && settings.RedType == PlayerHuman:
		mode = "human_vs_human"
	case settings.RedType == PlayerHuman:
		human = "red"
	default:
		human = "black"
	}
	starts := "black"
	if settings.RedStarts {
		starts = "red"
	}
	return GameSettingsDTO{
		Mode:        mode,
		BlackLevel:  settings.BlackLevel.String(),
		RedLevel:    settings.RedLevel.String(),
		WhoStarts:   starts,
		HumanPlayer: human,
	}
}
