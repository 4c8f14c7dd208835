package engine

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	default:
		return "unknown"
	}
}

type TTEntry struct {
	Key   uint64
	Depth int
	Score int
	Flag  TTFlag
	Valid bool
}

// TranspositionTable is a fixed-size bucketed cache of search results. It is
// owned by a single agent and is not safe for concurrent use.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
	count   int
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
	}
}

// NodeKey identifies a search node: the exact board plus the side to move.
func NodeKey(board Board, toMove PlayerColor) uint64 {
	key := board.Key()
	if toMove == PlayerRed {
		key |= 1 << 63
	}
	return key
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.count = 0
}

func (tt *TranspositionTable) Count() int {
	return tt.count
}

func (tt *TranspositionTable) Capacity() int {
	return len(tt.entries)
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(mixKey(key)&tt.mask) * tt.buckets
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		entry := tt.entries[start+i]
		if entry.Valid && entry.Key == key {
			return entry, true
		}
	}
	return TTEntry{}, false
}

// Store keeps the deeper result when the key is already present; otherwise it
// takes a free slot or evicts the shallowest entry of the bucket.
func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag) {
	start := tt.bucketIndex(key)
	entry := TTEntry{Key: key, Depth: depth, Score: score, Flag: flag, Valid: true}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		current := tt.entries[idx]
		if !current.Valid || current.Key != key {
			continue
		}
		if depth < current.Depth || (depth == current.Depth && flag != TTExact && current.Flag == TTExact) {
			return
		}
		tt.entries[idx] = entry
		return
	}

	victim := -1
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if !tt.entries[idx].Valid {
			tt.entries[idx] = entry
			tt.count++
			return
		}
		if victim < 0 || tt.entries[idx].Depth < tt.entries[victim].Depth {
			victim = idx
		}
	}
	if tt.entries[victim].Depth <= depth {
		tt.entries[victim] = entry
	}
}

func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

func mixKey(key uint64) uint64 {
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}
