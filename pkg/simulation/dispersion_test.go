package simulation

import (
	"math"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// clump inserts n boids of team on a tight grid starting at origin.
func clump(w *entity.World, team entity.Team, n int, origin geometry.Vector2D) {
	for i := 0; i < n; i++ {
		p := origin.Add(geometry.NewVector(float64(i%5)*10, float64(i/5)*10))
		addBoid(w, team, p, geometry.Vector2D{})
	}
}

func TestDispersion_Clusters(t *testing.T) {
	_, w := newTestFlock()
	clump(w, entity.Player, 6, geometry.NewVector(100, 100))
	clump(w, entity.Opponent, 4, geometry.NewVector(120, 100)) // overlaps, other team
	addBoid(w, entity.Player, geometry.NewVector(800, 500), geometry.Vector2D{})

	d := NewDispersion(DefaultConfig())
	clusters := d.Clusters(w)
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d; want 2 (singletons dropped)", len(clusters))
	}
	sizes := map[int]bool{len(clusters[0]): true, len(clusters[1]): true}
	if !sizes[6] || !sizes[4] {
		t.Errorf("cluster sizes = %d, %d; want 6 and 4", len(clusters[0]), len(clusters[1]))
	}
	for _, c := range clusters {
		first, _ := w.Boids.At(c[0])
		for _, idx := range c {
			if b, _ := w.Boids.At(idx); b.Team != first.Team {
				t.Fatal("a cluster must not mix teams")
			}
		}
	}
}

func TestDispersion_ChainLinkage(t *testing.T) {
	_, w := newTestFlock()
	// each boid is 50 apart: linked in a chain though the ends are 200 apart
	for i := 0; i < 5; i++ {
		addBoid(w, entity.Player, geometry.NewVector(100+float64(i)*50, 300), geometry.Vector2D{})
	}
	d := NewDispersion(DefaultConfig())
	if clusters := d.Clusters(w); len(clusters) != 1 || len(clusters[0]) != 5 {
		t.Errorf("clusters = %v; want one chain of 5", clusters)
	}
}

// bruteClusters labels every boid with the smallest index of its same-team
// single-linkage component, checking every pair.
func bruteClusters(w *entity.World, linkage float64) []int {
	n := w.Boids.Len()
	label := make([]int, n)
	for i := range label {
		label[i] = i
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			bi, _ := w.Boids.At(i)
			for j := 0; j < n; j++ {
				bj, _ := w.Boids.At(j)
				if bi.Team != bj.Team || bi.Pos.DistanceSquaredTo(bj.Pos) >= linkage*linkage {
					continue
				}
				if label[j] < label[i] {
					label[i], changed = label[j], true
				}
			}
		}
	}
	return label
}

func TestDispersion_ClustersMatchPairwise(t *testing.T) {
	_, w := newTestFlock()
	src := rng.New(11)
	for i := 0; i < 240; i++ {
		team := entity.Player
		if i%3 == 0 {
			team = entity.Opponent
		}
		addBoid(w, team, geometry.NewVector(src.Range(0, testW), src.Range(0, testH)), geometry.Vector2D{})
	}
	// coincident boids still link
	addBoid(w, entity.Player, geometry.NewVector(5, 5), geometry.Vector2D{})
	addBoid(w, entity.Player, geometry.NewVector(5, 5), geometry.Vector2D{})

	d := NewDispersion(DefaultConfig())
	want := bruteClusters(w, d.Linkage)
	got := make([]int, w.Boids.Len())
	for i := range got {
		got[i] = i
	}
	for _, c := range d.Clusters(w) {
		low := slices.Min(c)
		for _, idx := range c {
			got[idx] = low
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("grid clusters differ from the pairwise reference:\n got %v\nwant %v", got, want)
	}
}

func TestDispersion_Update(t *testing.T) {
	_, w := newTestFlock()
	clump(w, entity.Player, 20, geometry.NewVector(300, 300))
	clump(w, entity.Player, 10, geometry.NewVector(700, 300))

	d := NewDispersion(DefaultConfig())
	if d.Update(0.25, w) {
		t.Fatal("no recomputation before the interval")
	}
	if !d.Update(0.25, w) {
		t.Fatal("expected a recomputation at the interval")
	}
	// excess 5 -> ceil(7.5) = 8 boids dispersed, none from the small clump
	if d.Len() != 8 {
		t.Fatalf("dispersed = %d; want 8", d.Len())
	}
	for i := 20; i < 30; i++ {
		b, _ := w.Boids.At(i)
		if _, ok := d.Offset(b.ID); ok {
			t.Errorf("boid %d of the small clump got an offset", b.ID)
		}
	}
	for i := 0; i < 20; i++ {
		b, _ := w.Boids.At(i)
		if off, ok := d.Offset(b.ID); ok && math.Abs(off.Len()-100) > 1e-9 {
			t.Errorf("offset length = %v; want 100", off.Len())
		}
	}
}
