package engine

import "math"

type LogEntry struct {
	Move   Move
	Player PlayerColor
}

// MoveLog is the append-only record of every move played in a match.
type MoveLog struct {
	entries []LogEntry
}

func (h *MoveLog) Clear() {
	h.entries = nil
}

func (h *MoveLog) Push(entry LogEntry) {
	h.entries = append(h.entries, entry)
}

func (h *MoveLog) Size() int {
	return len(h.entries)
}

func (h *MoveLog) All() []LogEntry {
	return append([]LogEntry(nil), h.entries...)
}

type MoveClass int

const (
	MoveNeutral MoveClass = iota
	MoveOffensive
	MoveDefensive
)

func (c MoveClass) String() string {
	switch c {
	case MoveOffensive:
		return "offensive"
	case MoveDefensive:
		return "defensive"
	default:
		return "neutral"
	}
}

type StyleProfile struct {
	Offensive float64 `json:"offensive_ratio"`
	Defensive float64 `json:"defensive_ratio"`
	Neutral   float64 `json:"neutral_ratio"`
}

var NeutralProfile = StyleProfile{Neutral: 1}

// StyleReport holds one profile per colour. Sufficient is false when the
// log is too short to say anything, in which case both profiles are neutral.
type StyleReport struct {
	Sufficient bool                         `json:"sufficient"`
	Profiles   map[PlayerColor]StyleProfile `json:"-"`
	Moves      int                          `json:"moves"`
}

func (r StyleReport) Profile(player PlayerColor) StyleProfile {
	if p, ok := r.Profiles[player]; ok {
		return p
	}
	return NeutralProfile
}

func insufficientReport(moves int) StyleReport {
	return StyleReport{
		Profiles: map[PlayerColor]StyleProfile{
			PlayerBlack: NeutralProfile,
			PlayerRed:   NeutralProfile,
		},
		Moves: moves,
	}
}

// AnalyzeStyles replays entries from an empty board and classifies each move
// against the board just before it.
func AnalyzeStyles(entries []LogEntry) StyleReport {
	if len(entries) < 2 {
		return insufficientReport(len(entries))
	}
	var counts [2][3]int
	var board Board
	for _, entry := range entries {
		if entry.Move == nil || !InBounds(entry.Move.Target()) {
			continue
		}
		class := ClassifyMove(board, entry.Move, entry.Player)
		counts[playerSlot(entry.Player)][class]++
		board = replayMove(board, entry.Move, entry.Player)
	}
	report := StyleReport{
		Sufficient: true,
		Profiles:   make(map[PlayerColor]StyleProfile, 2),
		Moves:      len(entries),
	}
	for _, player := range []PlayerColor{PlayerBlack, PlayerRed} {
		c := counts[playerSlot(player)]
		total := c[MoveNeutral] + c[MoveOffensive] + c[MoveDefensive]
		if total == 0 {
			report.Profiles[player] = NeutralProfile
			continue
		}
		report.Profiles[player] = StyleProfile{
			Offensive: ratio(c[MoveOffensive], total),
			Defensive: ratio(c[MoveDefensive], total),
			Neutral:   ratio(c[MoveNeutral], total),
		}
	}
	return report
}

// ClassifyMove labels a move by the board it was played on. Blocking a
// still-open pattern where the opponent holds two or more cells wins over
// extending an own pattern.
func ClassifyMove(before Board, move Move, player PlayerColor) MoveClass {
	target := move.Target()
	patterns := WinPatterns()
	class := MoveNeutral
	for _, i := range PatternsThrough(target) {
		own, opp, _ := patterns[i].Counts(before, player)
		if opp >= 2 && own == 0 {
			return MoveDefensive
		}
		if own >= 1 {
			class = MoveOffensive
		}
	}
	return class
}

// replayMove is ApplyMove without the legality assumption: logs from the
// outside may be out of order.
func replayMove(board Board, move Move, player PlayerColor) Board {
	if r, ok := move.(Relocate); ok && InBounds(r.From) {
		board[r.From] = CellEmpty
	}
	board[move.Target()] = CellFromPlayer(player)
	return board
}

type ZonePreference struct {
	Center  float64 `json:"center"`
	Corners float64 `json:"corners"`
	Edges   float64 `json:"edges"`
}

var (
	centerCells = map[int]bool{12: true}
	cornerCells = map[int]bool{0: true, 4: true, 20: true, 24: true}
	edgeCells   = map[int]bool{
		1: true, 2: true, 3: true, 5: true, 9: true, 10: true,
		14: true, 15: true, 19: true, 21: true, 22: true, 23: true,
	}
)

// AnalyzeZones returns where player put its pieces during placement.
func AnalyzeZones(entries []LogEntry, player PlayerColor) ZonePreference {
	var center, corners, edges, total int
	for _, entry := range entries {
		place, ok := entry.Move.(Place)
		if !ok || entry.Player != player {
			continue
		}
		total++
		switch {
		case centerCells[place.Cell]:
			center++
		case cornerCells[place.Cell]:
			corners++
		case edgeCells[place.Cell]:
			edges++
		}
	}
	if total == 0 {
		return ZonePreference{}
	}
	return ZonePreference{
		Center:  ratio(center, total),
		Corners: ratio(corners, total),
		Edges:   ratio(edges, total),
	}
}

// BiasFromProfile turns the opponent's profile into evaluator multipliers.
func BiasFromProfile(profile StyleProfile, style StyleConfig) StyleBias {
	style = resolvedStyleConfig(style)
	bias := NeutralBias
	if profile.Offensive > style.AggressionThreshold {
		bias.Aggression = style.AggressionMultiplier
	}
	if profile.Defensive > style.DefensiveThreshold {
		bias.Fork = style.ForkMultiplier
	}
	return bias
}

func playerSlot(player PlayerColor) int {
	if player == PlayerRed {
		return 1
	}
	return 0
}

func ratio(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*100) / 100
}
