package engine

// RecentBoards remembers the last few positions an agent produced.
type RecentBoards struct {
	size int
	keys []uint64
}

func NewRecentBoards(size int) *RecentBoards {
	if size <= 0 {
		size = 3
	}
	return &RecentBoards{size: size}
}

func (r *RecentBoards) Push(board Board) {
	r.keys = append(r.keys, board.Key())
	if len(r.keys) > r.size {
		r.keys = r.keys[len(r.keys)-r.size:]
	}
}

func (r *RecentBoards) Contains(board Board) bool {
	key := board.Key()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (r *RecentBoards) Len() int {
	return len(r.keys)
}

func (r *RecentBoards) Clear() {
	r.keys = nil
}

// AgentContext is the mutable state private to one agent. Two agents in the
// same process must never share one.
type AgentContext struct {
	TT               *TranspositionTable
	Log              MoveLog
	Recent           *RecentBoards
	LastOpponentMove Move

	style      StyleReport
	styleMoves int
	styleReady bool
}

func NewAgentContext(cfg Config) *AgentContext {
	cfg = ResolveConfig(cfg)
	return &AgentContext{
		TT:     NewTranspositionTable(uint64(cfg.TTSize), cfg.TTBuckets),
		Recent: NewRecentBoards(cfg.RecentWindow),
	}
}

// Style returns the style report of the current log, recomputing it only
// when the log grew since the last call.
func (c *AgentContext) Style() StyleReport {
	if !c.styleReady || c.styleMoves != c.Log.Size() {
		c.style = AnalyzeStyles(c.Log.entries)
		c.styleMoves = c.Log.Size()
		c.styleReady = true
	}
	return c.style
}

func (c *AgentContext) LastOpponentTarget() int {
	if c.LastOpponentMove == nil {
		return -1
	}
	return c.LastOpponentMove.Target()
}

func (c *AgentContext) Reset() {
	c.TT.Clear()
	c.Log.Clear()
	c.Recent.Clear()
	c.LastOpponentMove = nil
	c.styleReady = false
	c.styleMoves = 0
}
