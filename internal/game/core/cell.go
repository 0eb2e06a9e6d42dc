package core

import "fmt"

// Cell is a position on the board. It doubles as the node identity in the
// grid graph and as an agent position.
type Cell struct {
	X, Y int
}

// NewCell creates a new cell with the given x and y values
func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// CellFromIndex creates a cell from a board array index using row-major ordering
func CellFromIndex(idx, width int) Cell {
	return Cell{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the cell is within the given bounds
func (c Cell) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the cell to a board array index using row-major ordering
func (c Cell) ToIndex(width int) int {
	return c.Y*width + c.X
}

// DistanceTo calculates the Manhattan distance to another cell
func (c Cell) DistanceTo(other Cell) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacentTo checks if this cell is orthogonally adjacent to another
func (c Cell) IsAdjacentTo(other Cell) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors in Directions order.
// Callers filter out-of-bounds cells themselves.
func (c Cell) Neighbors() [4]Cell {
	var out [4]Cell
	for i, d := range Directions {
		out[i] = c.Move(d)
	}
	return out
}

// Move returns the cell one step away in the given direction
func (c Cell) Move(d Direction) Cell {
	switch d {
	case North:
		return Cell{X: c.X, Y: c.Y - 1}
	case East:
		return Cell{X: c.X + 1, Y: c.Y}
	case South:
		return Cell{X: c.X, Y: c.Y + 1}
	case West:
		return Cell{X: c.X - 1, Y: c.Y}
	}
	return c
}

// DirectionTo returns the direction from this cell to an adjacent cell.
// The second result is false if the cells are not adjacent.
func (c Cell) DirectionTo(other Cell) (Direction, bool) {
	if !c.IsAdjacentTo(other) {
		return 0, false
	}
	switch {
	case other.Y < c.Y:
		return North, true
	case other.X > c.X:
		return East, true
	case other.Y > c.Y:
		return South, true
	default:
		return West, true
	}
}

// Less orders cells row-major: by Y, then by X.
func (c Cell) Less(other Cell) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// String returns a string representation of the cell
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ContainsCell reports whether cells holds c.
func ContainsCell(cells []Cell, c Cell) bool {
	for _, other := range cells {
		if other == c {
			return true
		}
	}
	return false
}
