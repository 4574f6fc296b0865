package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridLevel(blocks map[[2]int]BlockKind) *Level {
	lvl := NewLevel(testRand(), DefaultRules())
	for c, k := range blocks {
		lvl.AddBlock(NewBlock(k, CellAnchor(c[0], c[1])))
	}
	return lvl
}

func TestNavGrid_UnblockedByDefault(t *testing.T) {
	ng := NewNavGrid(nil)
	assert.False(t, ng.IsBlocked(0, 0))
	assert.False(t, ng.IsBlocked(GridCells-1, GridCells-1))
	assert.True(t, ng.IsBlocked(-1, 0), "out of bounds is blocked")
	assert.True(t, ng.IsBlocked(0, GridCells))
}

func TestNavGrid_BlockKinds(t *testing.T) {
	ng := NewNavGrid(gridLevel(map[[2]int]BlockKind{
		{1, 1}: BlockSteel,
		{2, 1}: BlockWater,
		{3, 1}: BlockBrick,
		{4, 1}: BlockForest,
		{5, 1}: BlockBase,
	}))
	assert.True(t, ng.IsBlocked(1, 1), "steel")
	assert.True(t, ng.IsBlocked(2, 1), "water")
	assert.False(t, ng.IsBlocked(3, 1), "brick can be shot through")
	assert.True(t, ng.IsBrick(3, 1))
	assert.False(t, ng.IsBlocked(4, 1), "forest")
	assert.True(t, ng.IsBlocked(5, 1), "base")
}

func TestCellOf(t *testing.T) {
	cx, cy := CellOf(Position{X: 276, Y: 552})
	assert.Equal(t, [2]int{6, 12}, [2]int{cx, cy})
	cx, cy = CellOf(Position{X: 30, Y: 10})
	assert.Equal(t, [2]int{1, 0}, [2]int{cx, cy}, "the centre decides the cell")
	cx, cy = CellOf(Position{X: -100, Y: 1e4})
	assert.Equal(t, [2]int{0, GridCells - 1}, [2]int{cx, cy})
	assert.Equal(t, Position{X: 92, Y: 46}, CellAnchor(2, 1))
}

func TestNavGrid_FindPathStraight(t *testing.T) {
	ng := NewNavGrid(nil)
	path := ng.FindPath(CellAnchor(0, 0), CellAnchor(4, 0))
	require.Len(t, path, 5)
	assert.Equal(t, [2]int{0, 0}, path[0])
	assert.Equal(t, [2]int{4, 0}, path[4])
}

func TestNavGrid_FindPathAroundSteel(t *testing.T) {
	// a steel wall across column 2 with a gap at the bottom
	walls := map[[2]int]BlockKind{}
	for y := 0; y < GridCells-1; y++ {
		walls[[2]int{2, y}] = BlockSteel
	}
	ng := NewNavGrid(gridLevel(walls))
	path := ng.FindPath(CellAnchor(0, 0), CellAnchor(4, 0))
	require.NotNil(t, path)
	for _, c := range path {
		assert.False(t, ng.IsBlocked(c[0], c[1]), "path crosses %v", c)
	}
	assert.Contains(t, path, [2]int{2, GridCells - 1}, "must use the gap")
}

func TestNavGrid_BrickIsPassable(t *testing.T) {
	walls := map[[2]int]BlockKind{}
	for y := 0; y < GridCells; y++ {
		walls[[2]int{2, y}] = BlockSteel
	}
	walls[[2]int{2, 0}] = BlockBrick
	ng := NewNavGrid(gridLevel(walls))
	path := ng.FindPath(CellAnchor(0, 0), CellAnchor(4, 0))
	require.Len(t, path, 5)
	assert.Equal(t, [2]int{2, 0}, path[2])
}

func TestNavGrid_NoPath(t *testing.T) {
	walls := map[[2]int]BlockKind{}
	for y := 0; y < GridCells; y++ {
		walls[[2]int{2, y}] = BlockWater
	}
	ng := NewNavGrid(gridLevel(walls))
	assert.Nil(t, ng.FindPath(CellAnchor(0, 0), CellAnchor(4, 0)))
}

func TestNavGrid_BlockedGoalIsReachable(t *testing.T) {
	ng := NewNavGrid(gridLevel(map[[2]int]BlockKind{{3, 3}: BlockSteel}))
	path := ng.FindPath(CellAnchor(0, 3), CellAnchor(3, 3))
	require.Len(t, path, 4)
}

func TestPlanStep(t *testing.T) {
	lvl := gridLevel(map[[2]int]BlockKind{
		{2, 5}: BlockSteel,
		{2, 6}: BlockBrick,
		{2, 7}: BlockSteel,
	})
	p := NewPlayerTank(1, CellAnchor(0, 6))
	lvl.AddTank(p)

	dir, brick := planStep(lvl, p)
	assert.Equal(t, DirNone, dir, "no enemies")
	assert.False(t, brick)

	lvl.AddTank(NewEnemyTank(0, TankBasic, CellAnchor(6, 6), testRand()))
	dir, brick = planStep(lvl, p)
	assert.Equal(t, DirRight, dir)
	assert.False(t, brick)

	p2 := NewPlayerTank(2, CellAnchor(1, 6))
	lvl.AddTank(p2)
	dir, brick = planStep(lvl, p2)
	assert.Equal(t, DirRight, dir)
	assert.True(t, brick, "the next cell is brick")

	assert.Equal(t, DirNone, func() Direction { d, _ := planStep(nil, p); return d }())
}
