package spatial

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

const (
	// MinCellSize is the lower bound applied by SetCellSize.
	MinCellSize = 32.0
	// DefaultCellSize is used until the first SetCellSize call.
	DefaultCellSize = 48.0
)

type gridKey struct {
	x, y int
}

// Grid is a uniform spatial hash of element indices.
// It is rebuilt from scratch every tick and keeps no state across rebuilds
// other than the allocated cell slices.
type Grid struct {
	cellSize float64
	cells    map[gridKey][]int
	pos      []geometry.Vector2D
}

// NewGrid returns an empty grid using DefaultCellSize.
func NewGrid() *Grid {
	return &Grid{
		cellSize: DefaultCellSize,
		cells:    make(map[gridKey][]int),
	}
}

// CellSize returns the current cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// SetCellSize derives the cell size from the average perception radius so a
// 3x3 scan covers one perception radius around any point.
func (g *Grid) SetCellSize(avgPerception float64) {
	g.cellSize = math.Max(MinCellSize, math.Floor(avgPerception*0.9))
}

func (g *Grid) key(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Rebuild clears the grid and inserts n elements whose positions are given by pos.
// Cell slices are truncated, not freed, so steady-state rebuilds do not allocate.
func (g *Grid) Rebuild(n int, pos func(i int) geometry.Vector2D) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.pos = g.pos[:0]
	for i := 0; i < n; i++ {
		p := pos(i)
		g.pos = append(g.pos, p)
		k := g.key(p)
		g.cells[k] = append(g.cells[k], i)
	}
}

// Len returns the number of indexed elements.
func (g *Grid) Len() int { return len(g.pos) }

// Neighbors appends to buf every element j != self within radius of element
// self, scanning the 3x3 block of cells around it. Coincident elements
// (distance 0) are skipped. The result is returned for reuse.
func (g *Grid) Neighbors(self int, radius float64, buf []int) []int {
	if self < 0 || self >= len(g.pos) {
		return buf
	}
	center := g.pos[self]
	c := g.key(center)
	r2 := radius * radius

	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			for _, j := range g.cells[gridKey{x: c.x + ox, y: c.y + oy}] {
				if j == self {
					continue
				}
				d2 := center.DistanceSquaredTo(g.pos[j])
				if d2 > 0 && d2 <= r2 {
					buf = append(buf, j)
				}
			}
		}
	}
	return buf
}

// CountWithin counts elements strictly within radius of center that satisfy
// keep (nil keeps all). Unlike Neighbors it scans every cell the radius
// touches, so it is exact for radii larger than one cell.
// It performs no allocations.
func (g *Grid) CountWithin(center geometry.Vector2D, radius float64, keep func(i int) bool) int {
	r2 := radius * radius
	minGx := int(math.Floor((center.X - radius) / g.cellSize))
	maxGx := int(math.Floor((center.X + radius) / g.cellSize))
	minGy := int(math.Floor((center.Y - radius) / g.cellSize))
	maxGy := int(math.Floor((center.Y + radius) / g.cellSize))

	count := 0
	for gx := minGx; gx <= maxGx; gx++ {
		for gy := minGy; gy <= maxGy; gy++ {
			for _, i := range g.cells[gridKey{x: gx, y: gy}] {
				if keep != nil && !keep(i) {
					continue
				}
				if center.DistanceSquaredTo(g.pos[i]) < r2 {
					count++
				}
			}
		}
	}
	return count
}

// Within appends to buf every element strictly within radius of center,
// coincident ones included, scanning every cell the radius touches.
func (g *Grid) Within(center geometry.Vector2D, radius float64, buf []int) []int {
	r2 := radius * radius
	minGx := int(math.Floor((center.X - radius) / g.cellSize))
	maxGx := int(math.Floor((center.X + radius) / g.cellSize))
	minGy := int(math.Floor((center.Y - radius) / g.cellSize))
	maxGy := int(math.Floor((center.Y + radius) / g.cellSize))

	for gx := minGx; gx <= maxGx; gx++ {
		for gy := minGy; gy <= maxGy; gy++ {
			for _, i := range g.cells[gridKey{x: gx, y: gy}] {
				if center.DistanceSquaredTo(g.pos[i]) < r2 {
					buf = append(buf, i)
				}
			}
		}
	}
	return buf
}
