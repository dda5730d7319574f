package board

// Offset is a (dx, dy) displacement applied to a position.
type Offset struct {
	DX, DY int
}

// knightOffsets is the fixed enumeration order of knight moves.
// Search results depend on this order, so it must not change.
var knightOffsets = [8]Offset{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

// KnightOffsets returns a copy of the eight knight displacements.
func KnightOffsets() []Offset {
	out := make([]Offset, len(knightOffsets))
	copy(out, knightOffsets[:])
	return out
}

// Apply returns p shifted by o. The result may be off the board.
func (p Position) Apply(o Offset) Position {
	return Position{Col: p.Col + o.DX, Row: p.Row + o.DY}
}

// Neighbors returns the on-board positions one knight move from p,
// in offset enumeration order.
func Neighbors(p Position) []Position {
	out := make([]Position, 0, len(knightOffsets))
	for _, o := range knightOffsets {
		if next := p.Apply(o); OnBoard(next) {
			out = append(out, next)
		}
	}
	return out
}

// IsKnightMove reports whether b is exactly one knight move from a.
func IsKnightMove(a, b Position) bool {
	d := Offset{DX: b.Col - a.Col, DY: b.Row - a.Row}
	for _, o := range knightOffsets {
		if o == d {
			return true
		}
	}
	return false
}
