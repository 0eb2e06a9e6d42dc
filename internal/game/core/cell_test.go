package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellFromIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		width    int
		expected Cell
	}{
		{"TopLeft", 0, 10, Cell{0, 0}},
		{"TopRight", 9, 10, Cell{9, 0}},
		{"SecondRow", 10, 10, Cell{0, 1}},
		{"Middle", 55, 10, Cell{5, 5}},
		{"SmallBoard", 7, 4, Cell{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CellFromIndex(tt.index, tt.width))
			assert.Equal(t, tt.index, tt.expected.ToIndex(tt.width))
		})
	}
}

func TestCell_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		valid bool
	}{
		{"Origin", Cell{0, 0}, true},
		{"FarCorner", Cell{3, 2}, true},
		{"NegativeX", Cell{-1, 0}, false},
		{"NegativeY", Cell{0, -1}, false},
		{"XTooLarge", Cell{4, 0}, false},
		{"YTooLarge", Cell{0, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.cell.IsValid(4, 3))
		})
	}
}

func TestCell_Neighbors(t *testing.T) {
	c := Cell{2, 2}
	n := c.Neighbors()

	assert.Equal(t, [4]Cell{{2, 1}, {3, 2}, {2, 3}, {1, 2}}, n, "neighbors must follow N, E, S, W")
	for _, other := range n {
		assert.True(t, c.IsAdjacentTo(other))
		assert.Equal(t, 1, c.DistanceTo(other))
	}
}

func TestCell_DirectionTo(t *testing.T) {
	c := Cell{1, 1}
	for _, d := range Directions {
		got, ok := c.DirectionTo(c.Move(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := c.DirectionTo(Cell{2, 2})
	assert.False(t, ok, "diagonal cells are not adjacent")
	_, ok = c.DirectionTo(c)
	assert.False(t, ok)
}

func TestCell_Less(t *testing.T) {
	assert.True(t, Cell{5, 0}.Less(Cell{0, 1}), "row-major: y dominates")
	assert.True(t, Cell{0, 1}.Less(Cell{1, 1}))
	assert.False(t, Cell{1, 1}.Less(Cell{1, 1}))
}

func TestCell_DistanceTo(t *testing.T) {
	assert.Equal(t, 0, Cell{3, 3}.DistanceTo(Cell{3, 3}))
	assert.Equal(t, 4, Cell{0, 0}.DistanceTo(Cell{2, 2}))
	assert.Equal(t, 7, Cell{5, 1}.DistanceTo(Cell{0, 3}))
}

func TestContainsCell(t *testing.T) {
	cells := []Cell{{1, 0}, {0, 1}}
	assert.True(t, ContainsCell(cells, Cell{0, 1}))
	assert.False(t, ContainsCell(cells, Cell{1, 1}))
	assert.False(t, ContainsCell(nil, Cell{0, 0}))
}

func TestAgent(t *testing.T) {
	assert.Equal(t, Evader, Pursuer.Opponent())
	assert.Equal(t, Pursuer, Evader.Opponent())
	assert.Equal(t, NoAgent, NoAgent.Opponent())
	assert.Equal(t, "pursuer", Pursuer.String())
	assert.Equal(t, "evader", Evader.String())

	a, err := ParseAgent("jerry")
	assert.NoError(t, err)
	assert.Equal(t, Evader, a)

	_, err = ParseAgent("spike")
	assert.ErrorIs(t, err, ErrInvalidAgent)
}
