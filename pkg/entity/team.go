// Package entity holds the match entities: boids, dots, bases and storms,
// plus the World container that owns them.
//
// Entities reference each other through arena handles, never pointers, so a
// dot carried by a boid and the boid carrying it can both be moved around in
// their arenas without dangling links.
package entity

import "fmt"

// Team identifies a side. Neutral is only ever used as a dot owner.
type Team int

const (
	Player   Team = 0
	Opponent Team = 1
	Neutral  Team = -1
)

// Other returns the opposing team. Neutral has no opponent and is returned as is.
func (t Team) Other() Team {
	switch t {
	case Player:
		return Opponent
	case Opponent:
		return Player
	}
	return t
}

// Valid reports whether t is one of the two playing teams.
func (t Team) Valid() bool { return t == Player || t == Opponent }

func (t Team) String() string {
	switch t {
	case Player:
		return "player"
	case Opponent:
		return "opponent"
	case Neutral:
		return "neutral"
	}
	return fmt.Sprintf("team(%d)", int(t))
}
