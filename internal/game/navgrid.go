package game

import (
	"container/heap"
	"math"
)

// Path costs per cell. Brick can be shot away, so it is passable at a price.
const (
	navOpen    = 1.0
	navBrick   = 3.0
	navBlocked = 0.0
)

// NavGrid is a GridCells x GridCells map of driving costs, where 0 = blocked.
type NavGrid struct {
	cols int
	rows int
	cost []float64
}

// NewNavGrid builds a cost grid from the level's standing blocks. Steel,
// water, wrecks and the base block a cell; forest does not.
func NewNavGrid(lvl *Level) *NavGrid {
	ng := &NavGrid{
		cols: GridCells,
		rows: GridCells,
		cost: make([]float64, GridCells*GridCells),
	}
	for i := range ng.cost {
		ng.cost[i] = navOpen
	}
	if lvl == nil {
		return ng
	}
	for _, b := range lvl.blocks {
		if !b.Exists() {
			continue
		}
		cx, cy := CellOf(b.pos)
		k := cy*ng.cols + cx
		switch {
		case b.kind == BlockBrick:
			ng.cost[k] = max(ng.cost[k], navBrick)
		case b.BlocksMovement():
			ng.cost[k] = navBlocked
		}
	}
	return ng
}

// IsBlocked returns true if the cell at (cx, cy) cannot be driven through.
func (ng *NavGrid) IsBlocked(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= ng.cols || cy >= ng.rows {
		return true
	}
	return ng.cost[cy*ng.cols+cx] == navBlocked
}

// IsBrick reports whether the cell holds brick.
func (ng *NavGrid) IsBrick(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= ng.cols || cy >= ng.rows {
		return false
	}
	return ng.cost[cy*ng.cols+cx] == navBrick
}

// CellOf maps an anchored position to the cell holding its centre,
// clamped to the grid.
func CellOf(p Position) (int, int) {
	half := float64(CellSize) / 2
	cx := int((p.X + half) / CellSize)
	cy := int((p.Y + half) / CellSize)
	return min(max(cx, 0), GridCells-1), min(max(cy, 0), GridCells-1)
}

// CellAnchor is the top-left anchor of a cell.
func CellAnchor(cx, cy int) Position {
	return Position{X: float64(cx * CellSize), Y: float64(cy * CellSize)}
}

// --- A* pathfinding ---

type pathNode struct {
	cx, cy int
	g, h   float64
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int)      { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x any)        { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// tanks drive along the four cardinals only
var navSteps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FindPath returns the cells from the one holding from to the one holding
// to, both included. The goal cell may be blocked (a tank sitting on it is
// the usual target). Returns nil if no path exists.
func (ng *NavGrid) FindPath(from, to Position) [][2]int {
	scx, scy := CellOf(from)
	gcx, gcy := CellOf(to)

	key := func(cx, cy int) int { return cy*ng.cols + cx }
	heuristic := func(ax, ay int) float64 {
		return math.Abs(float64(ax-gcx)) + math.Abs(float64(ay-gcy))
	}

	start := &pathNode{cx: scx, cy: scy, h: heuristic(scx, scy)}
	ol := &openList{start}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := map[int]*pathNode{key(scx, scy): start}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cx == gcx && cur.cy == gcy {
			return buildPath(cur)
		}
		k := key(cur.cx, cur.cy)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range navSteps {
			nx, ny := cur.cx+d[0], cur.cy+d[1]
			if ng.IsBlocked(nx, ny) && (nx != gcx || ny != gcy) {
				continue
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}
			cost := ng.cost[nk]
			if cost == navBlocked {
				cost = navOpen
			}
			g := cur.g + cost
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &pathNode{cx: nx, cy: ny, g: g, h: heuristic(nx, ny), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

func buildPath(end *pathNode) [][2]int {
	var cells [][2]int
	for n := end; n != nil; n = n.parent {
		cells = append(cells, [2]int{n.cx, n.cy})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
