package engine

type PlayerColor int

const (
	PlayerBlack PlayerColor = iota
	PlayerRed
)

func (p PlayerColor) Opponent() PlayerColor {
	if p == PlayerBlack {
		return PlayerRed
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "red"
}

type Phase int

const (
	PhasePlacement Phase = iota
	PhaseMovement
)

func (p Phase) String() string {
	if p == PhasePlacement {
		return "placement"
	}
	return "movement"
}
