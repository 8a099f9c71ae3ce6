package simulation

import "github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"

// Waypoint is a point the player team visits in order.
type Waypoint struct {
	ID      int
	Pos     geometry.Vector2D
	Radius  float64
	Active  bool
	visited map[int]struct{}
}

// Visits returns how many distinct boids reached the waypoint.
func (wp *Waypoint) Visits() int { return len(wp.visited) }

// Waypoints is a bounded FIFO of waypoints. When it is full, adding a new
// waypoint evicts the oldest one.
type Waypoints struct {
	list   []*Waypoint
	nextID int
	max    int
	radius float64
	retire int
}

// NewWaypoints returns an empty queue holding at most max waypoints of the
// given radius. A waypoint retires once more than retire boids have visited it.
func NewWaypoints(max int, radius float64, retire int) *Waypoints {
	return &Waypoints{max: max, radius: radius, retire: retire}
}

// Add appends a waypoint at p.
func (q *Waypoints) Add(p geometry.Vector2D) *Waypoint {
	if len(q.list) >= q.max {
		q.list = q.list[1:]
	}
	q.nextID++
	wp := &Waypoint{
		ID:      q.nextID,
		Pos:     p,
		Radius:  q.radius,
		Active:  true,
		visited: make(map[int]struct{}),
	}
	q.list = append(q.list, wp)
	return wp
}

// Clear drops every waypoint.
func (q *Waypoints) Clear() { q.list = q.list[:0] }

// Len returns the number of queued waypoints, active or not.
func (q *Waypoints) Len() int { return len(q.list) }

// All returns the queued waypoints, oldest first.
func (q *Waypoints) All() []*Waypoint { return q.list }

// Next returns the waypoint boid id should head for: the first active one it
// has not visited yet. Reaching it marks it visited; the waypoint is still
// returned for this tick. When every waypoint has retired the queue empties.
func (q *Waypoints) Next(id int, pos geometry.Vector2D) (geometry.Vector2D, bool) {
	for _, wp := range q.list {
		if !wp.Active {
			continue
		}
		if _, seen := wp.visited[id]; seen {
			continue
		}
		if pos.DistanceTo(wp.Pos) < wp.Radius {
			wp.visited[id] = struct{}{}
			if len(wp.visited) > q.retire {
				wp.Active = false
			}
		}
		return wp.Pos, true
	}

	for _, wp := range q.list {
		if wp.Active {
			return geometry.Vector2D{}, false
		}
	}
	q.Clear()
	return geometry.Vector2D{}, false
}
