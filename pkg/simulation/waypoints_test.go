package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

func TestWaypoints_EvictsOldest(t *testing.T) {
	q := NewWaypoints(3, 40, 50)
	for i := 0; i < 4; i++ {
		q.Add(geometry.NewVector(float64(i*100), 0))
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d; want 3", q.Len())
	}
	if first := q.All()[0]; first.Pos.X != 100 {
		t.Errorf("oldest waypoint at %v; want x=100 after eviction", first.Pos)
	}
}

func TestWaypoints_NextInOrder(t *testing.T) {
	q := NewWaypoints(10, 40, 50)
	a, b := geometry.NewVector(100, 100), geometry.NewVector(400, 100)
	q.Add(a)
	q.Add(b)

	if got, ok := q.Next(1, geometry.NewVector(0, 0)); !ok || !got.Eq(a) {
		t.Fatalf("Next far away = %v, %v; want first waypoint", got, ok)
	}
	// Reaching the waypoint still returns it for this tick.
	if got, _ := q.Next(1, geometry.NewVector(110, 100)); !got.Eq(a) {
		t.Errorf("Next on arrival = %v; want %v", got, a)
	}
	if got, _ := q.Next(1, geometry.NewVector(110, 100)); !got.Eq(b) {
		t.Errorf("Next after arrival = %v; want %v", got, b)
	}
	// Other boids still head for the first one.
	if got, _ := q.Next(2, geometry.NewVector(0, 0)); !got.Eq(a) {
		t.Errorf("Next for another boid = %v; want %v", got, a)
	}
	if v := q.All()[0].Visits(); v != 1 {
		t.Errorf("visits = %d; want 1", v)
	}
}

func TestWaypoints_RetireAndClear(t *testing.T) {
	q := NewWaypoints(10, 40, 2)
	p := geometry.NewVector(100, 100)
	q.Add(p)

	for id := 0; id < 3; id++ {
		q.Next(id, p)
	}
	if q.All()[0].Active {
		t.Fatal("waypoint should retire after more than 2 visits")
	}
	if _, ok := q.Next(99, geometry.Vector2D{}); ok {
		t.Error("no waypoint should be returned once all retired")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d; want the queue cleared", q.Len())
	}
}

func TestWaypoints_DoneBoidKeepsQueue(t *testing.T) {
	q := NewWaypoints(10, 40, 50)
	p := geometry.NewVector(100, 100)
	q.Add(p)
	q.Next(1, p)

	if _, ok := q.Next(1, p); ok {
		t.Error("a boid that visited every waypoint gets no target")
	}
	if q.Len() != 1 {
		t.Error("the queue must survive while a waypoint is still active")
	}
}
