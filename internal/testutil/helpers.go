package testutil

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// NewTestRNG returns a seeded RNG so placement and games replay exactly.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger silences board and engine logging in tests.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertRoute checks that path is a walk of unit N/E/S/W steps from `from`
// to `to`.
func AssertRoute(t *testing.T, path []core.Cell, from, to core.Cell, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !assert.NotEmpty(t, path, msgAndArgs...) {
		return false
	}
	ok := assert.Equal(t, from, path[0], msgAndArgs...)
	ok = assert.Equal(t, to, path[len(path)-1], msgAndArgs...) && ok
	for i := 1; i < len(path); i++ {
		if !path[i-1].IsAdjacentTo(path[i]) {
			msg := fmt.Sprintf("route is not contiguous at step %d: %v -> %v", i, path[i-1], path[i])
			ok = assert.Fail(t, msg, msgAndArgs...) && ok
		}
	}
	return ok
}

// AssertRouteAvoids checks that no cell of path is in blocked.
func AssertRouteAvoids(t *testing.T, path, blocked []core.Cell, msgAndArgs ...interface{}) bool {
	t.Helper()
	ok := true
	for _, c := range path {
		if core.ContainsCell(blocked, c) {
			ok = assert.Fail(t, fmt.Sprintf("route crosses blocked cell %v", c), msgAndArgs...) && ok
		}
	}
	return ok
}

// AssertDistinctCells checks that no cell appears twice across all groups.
func AssertDistinctCells(t *testing.T, groups ...[]core.Cell) bool {
	t.Helper()
	seen := make(map[core.Cell]int)
	ok := true
	for g, cells := range groups {
		for _, c := range cells {
			if prev, dup := seen[c]; dup {
				ok = assert.Fail(t, fmt.Sprintf("cell %v used in groups %d and %d", c, prev, g)) && ok
				continue
			}
			seen[c] = g
		}
	}
	return ok
}
