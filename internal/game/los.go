package game

import "math"

// HasLineOfFire returns true if a shot from the centre of the cell-sized
// box at from to the centre of the one at to would not first meet steel or
// a base. Brick does not count: the shot clears it.
func HasLineOfFire(lvl *Level, from, to Position) bool {
	if lvl == nil {
		return true
	}
	half := float64(CellSize) / 2
	ax, ay := from.X+half, from.Y+half
	bx, by := to.X+half, to.Y+half
	for _, b := range lvl.blocks {
		if !b.Exists() || (b.kind != BlockSteel && b.kind != BlockBase) {
			continue
		}
		r := b.Bounds()
		if rayIntersectsAABB(ax, ay, bx, by, r.X, r.Y, r.X+r.W, r.Y+r.H) {
			return false
		}
	}
	return true
}

// safeToFire reports whether a shot along dir (the facing for DirNone)
// meets neither steel nor the base before the arena edge.
func safeToFire(lvl *Level, t *Tank, dir Direction) bool {
	if dir == DirNone {
		dir = t.facing
	}
	return HasLineOfFire(lvl, t.pos, t.pos.Move(dir, ArenaWidth))
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// Check X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Check Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}

	if tMin < 0 {
		tMin = 0
	}
	if tMin > 1 {
		return 0, false
	}

	return tMin, true
}

// rayIntersectsAABB checks if the line segment from (ox,oy)->(ex,ey)
// intersects the axis-aligned bounding box defined by (minX,minY)-(maxX,maxY).
func rayIntersectsAABB(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}
