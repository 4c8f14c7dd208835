package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ardou0/Teeko-IA41/engine"
)

type StatusResponse struct {
	MatchID         string            `json:"match_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	Phase           string            `json:"phase"`
	TurnCount       int               `json:"turn_count"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []int             `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
	Started         bool              `json:"started"`
}

// moveDTO is the wire form of a move: {"kind":"place","cell":12} or
// {"kind":"relocate","from":6,"to":12}.
type moveDTO struct {
	Kind string `json:"kind"`
	Cell *int   `json:"cell,omitempty"`
	From *int   `json:"from,omitempty"`
	To   *int   `json:"to,omitempty"`
}

type historyEntryDTO struct {
	Move      moveDTO `json:"move"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   engine.Config   `json:"config"`
}

type hintResponse struct {
	Move       moveDTO `json:"move"`
	Score      int     `json:"score"`
	Depth      int     `json:"depth"`
	Reason     string  `json:"reason"`
	Candidates int     `json:"candidates"`
	Nodes      int64   `json:"nodes"`
}

func intPtr(v int) *int {
	return &v
}

func moveToDTO(move engine.Move) moveDTO {
	switch m := move.(type) {
	case engine.Place:
		return moveDTO{Kind: "place", Cell: intPtr(m.Cell)}
	case engine.Relocate:
		return moveDTO{Kind: "relocate", From: intPtr(m.From), To: intPtr(m.To)}
	}
	return moveDTO{}
}

func moveFromDTO(dto moveDTO) (engine.Move, error) {
	switch dto.Kind {
	case "place":
		if dto.Cell == nil {
			return nil, fmt.Errorf("place without cell")
		}
		return engine.Place{Cell: *dto.Cell}, nil
	case "relocate":
		if dto.From == nil || dto.To == nil {
			return nil, fmt.Errorf("relocate needs from and to")
		}
		return engine.Relocate{From: *dto.From, To: *dto.To}, nil
	}
	return nil, fmt.Errorf("unknown move kind %q", dto.Kind)
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Move:      moveToDTO(entry.Move),
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
		Reason:    entry.Reason,
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	out := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryToDTO(entry))
	}
	return out
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	var line []int
	if pattern, ok := state.WinningLine(); ok {
		line = append(line, pattern[:]...)
	}
	return StatusResponse{
		MatchID:         controller.MatchID().String(),
		Settings:        settingsToDTO(controller.Settings()),
		Board:           boardToSlice(state.Board()),
		NextPlayer:      playerToInt(state.CurrentPlayer()),
		Winner:          winnerFromState(state),
		Status:          statusToString(state.Status()),
		Phase:           state.Phase().String(),
		TurnCount:       state.TurnCount(),
		History:         historyToDTO(controller.History()),
		WinningLine:     line,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
		Started:         controller.Started(),
	}
}

func boardToSlice(board engine.Board) [][]int {
	rows := make([][]int, engine.BoardSize)
	for row := range rows {
		rows[row] = make([]int, engine.BoardSize)
		for col := range rows[row] {
			rows[row][col] = cellToInt(board.At(engine.Index(row, col)))
		}
	}
	return rows
}

// Players are 1 (black) and 2 (red) on the wire, 0 is empty.
func cellToInt(cell engine.Cell) int {
	switch cell {
	case engine.CellBlack:
		return 1
	case engine.CellRed:
		return 2
	}
	return 0
}

func playerToInt(player engine.PlayerColor) int {
	if player == engine.PlayerRed {
		return 2
	}
	return 1
}

func winnerFromState(state *engine.GameState) int {
	winner, ok := state.Winner()
	if !ok {
		return 0
	}
	return playerToInt(winner)
}

func statusToString(status engine.GameStatus) string {
	switch status {
	case engine.StatusBlackWon:
		return "black_won"
	case engine.StatusRedWon:
		return "red_won"
	}
	return "running"
}

func decisionToHint(decision engine.Decision) hintResponse {
	return hintResponse{
		Move:       moveToDTO(decision.Move),
		Score:      decision.Score,
		Depth:      decision.Depth,
		Reason:     string(decision.Reason),
		Candidates: decision.Candidates,
		Nodes:      decision.Stats.Nodes,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
