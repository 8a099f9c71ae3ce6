// Package formation generates advisory slot positions for a group of boids.
// A Pattern never applies forces; callers read slot positions and steer
// toward them if they want to.
package formation

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

// Type identifies the shape of a formation.
type Type int

const (
	VFormation Type = iota // leader at the point, members trailing on both sides
	Line                   // single file to the right of the target
	Circle                 // ring around the target
	Diamond                // four-point layers growing outward
	Swarm                  // everyone on the target
	Split                  // two columns either side of the target
	Pincer                 // two rays at ±45°
)

var typeNames = [...]string{"v-formation", "line", "circle", "diamond", "swarm", "split", "pincer"}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

const (
	// DefaultSpacing is the pixel gap between adjacent slots.
	DefaultSpacing = 30.0
	// DefaultCapacity bounds how many members a pattern admits.
	DefaultCapacity = 20
)

// Candidate is the subset of boid state relevant to membership.
type Candidate struct {
	ID       int
	Stun     float64
	Carrying bool
}

func (c Candidate) eligible() bool { return c.Stun == 0 && !c.Carrying }

// Pattern is a formation shape anchored at Target with an ordered membership.
// Slot 0 belongs to the leader, the first admitted member.
type Pattern struct {
	Type     Type
	Target   geometry.Vector2D
	Spacing  float64
	Capacity int

	members []int
}

// New returns an empty pattern of type t anchored at target.
func New(t Type, target geometry.Vector2D) *Pattern {
	return &Pattern{
		Type:     t,
		Target:   target,
		Spacing:  DefaultSpacing,
		Capacity: DefaultCapacity,
	}
}

// Assign clears the membership and admits, in order, up to min(count,
// Capacity) eligible candidates. Stunned and carrying boids are skipped.
func (p *Pattern) Assign(candidates []Candidate, count int) {
	p.members = p.members[:0]
	limit := min(count, p.Capacity)
	for _, c := range candidates {
		if len(p.members) >= limit {
			break
		}
		if c.eligible() {
			p.members = append(p.members, c.ID)
		}
	}
}

// SetTarget moves the anchor.
func (p *Pattern) SetTarget(target geometry.Vector2D) { p.Target = target }

// Len returns the number of members.
func (p *Pattern) Len() int { return len(p.members) }

// Has reports whether boid id is a member.
func (p *Pattern) Has(id int) bool { return slices.Contains(p.members, id) }

// Leader returns the leader id and false when the pattern is empty.
func (p *Pattern) Leader() (int, bool) {
	if len(p.members) == 0 {
		return 0, false
	}
	return p.members[0], true
}

// Index returns the slot index of boid id, or -1.
func (p *Pattern) Index(id int) int { return slices.Index(p.members, id) }

// Slot returns the world position of slot index. Without a leader every
// slot collapses onto the target.
func (p *Pattern) Slot(index int) geometry.Vector2D {
	if len(p.members) == 0 {
		return p.Target
	}
	return p.Target.Add(p.offset(index))
}

func (p *Pattern) offset(index int) geometry.Vector2D {
	s := p.Spacing
	switch p.Type {
	case VFormation:
		if index == 0 {
			return geometry.Vector2D{}
		}
		side := -1.0
		if index%2 == 0 {
			side = 1
		}
		row := float64((index + 1) / 2)
		return geometry.NewVector(side*row*s, row*s*0.7)

	case Line:
		return geometry.NewVector(float64(index)*s, 0)

	case Circle:
		total := float64(len(p.members))
		angle := float64(index) / total * math.Pi * 2
		return geometry.NewVectorPolar(s*math.Max(3, total/4), angle)

	case Diamond:
		points := [4]geometry.Vector2D{{X: 0, Y: -s}, {X: s, Y: 0}, {X: 0, Y: s}, {X: -s, Y: 0}}
		layer := float64(index / 4)
		return points[index%4].Mul(1 + layer*0.5)

	case Split:
		x := s * 2
		if index%2 == 0 {
			x = -x
		}
		return geometry.NewVector(x, float64(index/2)*s)

	case Pincer:
		angle := math.Pi / 4
		if index%2 == 0 {
			angle = -angle
		}
		return geometry.NewVectorPolar(s*float64(2+index/2), angle)
	}
	return geometry.Vector2D{}
}
