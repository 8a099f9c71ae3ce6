package simulation

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/spatial"
)

// Dispersion breaks up oversized same-team clumps. Every Interval seconds it
// finds clusters by single linkage and hands the outermost members of each
// big cluster an outward offset that is added to their goal.
type Dispersion struct {
	MaxCluster int
	Linkage    float64
	Radius     float64
	Interval   float64

	timer   float64
	offsets map[int]geometry.Vector2D
	grid    *spatial.Grid
	visited []bool
	stack   []int
	near    []int
}

// NewDispersion builds a Dispersion from cfg.
func NewDispersion(cfg *Config) *Dispersion {
	return &Dispersion{
		MaxCluster: cfg.MaxClusterSize,
		Linkage:    cfg.ClusterRadius,
		Radius:     cfg.DispersionRadius,
		Interval:   cfg.DispersionInterval,
		offsets:    make(map[int]geometry.Vector2D),
		grid:       spatial.NewGrid(),
	}
}

// Offset returns the dispersion offset assigned to boid id, if any.
func (d *Dispersion) Offset(id int) (geometry.Vector2D, bool) {
	o, ok := d.offsets[id]
	return o, ok
}

// Len returns the number of boids currently being dispersed.
func (d *Dispersion) Len() int { return len(d.offsets) }

// Update advances the timer and recomputes offsets when it expires. It
// reports whether a recomputation happened.
func (d *Dispersion) Update(dtS float64, w *entity.World) bool {
	d.timer += dtS
	if d.timer < d.Interval {
		return false
	}
	d.timer = 0
	clear(d.offsets)

	for _, cluster := range d.Clusters(w) {
		if len(cluster) <= d.MaxCluster {
			continue
		}
		d.disperse(w, cluster)
	}
	return true
}

func (d *Dispersion) disperse(w *entity.World, cluster []int) {
	pts := make([]geometry.Vector2D, len(cluster))
	for i, idx := range cluster {
		b, _ := w.Boids.At(idx)
		pts[i] = b.Pos
	}
	centre := geometry.Centroid(pts)

	// outermost first
	slices.SortFunc(cluster, func(a, b int) int {
		ba, _ := w.Boids.At(a)
		bb, _ := w.Boids.At(b)
		da, db := ba.Pos.DistanceSquaredTo(centre), bb.Pos.DistanceSquaredTo(centre)
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})

	excess := len(cluster) - d.MaxCluster
	n := min(len(cluster), int(math.Ceil(float64(excess)*1.5)))
	for i := 0; i < n; i++ {
		b, _ := w.Boids.At(cluster[i])
		angle := float64(i) / float64(n) * 2 * math.Pi
		d.offsets[b.ID] = geometry.FromAngle(angle).Mul(d.Radius)
	}
}

// Clusters groups boid indices of the same team into connected components
// where each member is within Linkage of another member. Singletons are
// omitted. Linkage is resolved through a grid rebuilt from the current
// positions.
func (d *Dispersion) Clusters(w *entity.World) [][]int {
	n := w.Boids.Len()
	if cap(d.visited) < n {
		d.visited = make([]bool, n)
	}
	d.visited = d.visited[:n]
	clear(d.visited)
	d.grid.SetCellSize(d.Linkage)
	d.grid.Rebuild(n, func(i int) geometry.Vector2D {
		b, _ := w.Boids.At(i)
		return b.Pos
	})

	var clusters [][]int
	for i := 0; i < n; i++ {
		if d.visited[i] {
			continue
		}
		d.visited[i] = true
		seed, _ := w.Boids.At(i)
		cluster := []int{i}
		d.stack = append(d.stack[:0], i)
		for len(d.stack) > 0 {
			cur := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			cb, _ := w.Boids.At(cur)
			d.near = d.grid.Within(cb.Pos, d.Linkage, d.near[:0])
			for _, j := range d.near {
				if d.visited[j] {
					continue
				}
				if ob, _ := w.Boids.At(j); ob.Team != seed.Team {
					continue
				}
				d.visited[j] = true
				cluster = append(cluster, j)
				d.stack = append(d.stack, j)
			}
		}
		if len(cluster) > 1 {
			clusters = append(clusters, cluster)
		}
	}
	return clusters
}
