package engine

import "fmt"

// Move is either a Place or a Relocate. The interface is sealed so no other
// shape can be constructed outside this package.
type Move interface {
	// Target is the cell the mover ends up occupying.
	Target() int
	String() string
	isMove()
}

type Place struct {
	Cell int
}

type Relocate struct {
	From int
	To   int
}

func (m Place) Target() int    { return m.Cell }
func (m Place) String() string { return fmt.Sprintf("place(%d)", m.Cell) }
func (Place) isMove()          {}

func (m Relocate) Target() int    { return m.To }
func (m Relocate) String() string { return fmt.Sprintf("relocate(%d->%d)", m.From, m.To) }
func (Relocate) isMove()          {}

func (m Place) IsValid() bool {
	return InBounds(m.Cell)
}

func (m Relocate) IsValid() bool {
	return InBounds(m.From) && InBounds(m.To)
}
