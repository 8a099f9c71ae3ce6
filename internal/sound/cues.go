package sound

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// Cue identifies one synthesised sound.
type Cue int

const (
	CuePickup Cue = iota
	CueSteal
	CueDeposit
	CueDrop
	CueLevelUp
	CueWave
	CueReinforce
	CueStorm
	CueChaos
	CueMode
	cueCount
)

var cueNames = [cueCount]string{"pickup", "steal", "deposit", "drop", "level-up", "wave", "reinforce", "storm", "chaos", "mode"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// opponentPitch lowers every opponent cue by a fourth.
const opponentPitch = 0.75

// CueFor maps an event to its cue. Objective changes are silent.
func CueFor(e simulation.Event) (Cue, bool) {
	switch e.Kind {
	case simulation.EventPickup:
		return CuePickup, true
	case simulation.EventSteal:
		return CueSteal, true
	case simulation.EventDeposit:
		return CueDeposit, true
	case simulation.EventDrop:
		return CueDrop, true
	case simulation.EventLevelUp:
		return CueLevelUp, true
	case simulation.EventWave:
		return CueWave, true
	case simulation.EventReinforce:
		return CueReinforce, true
	case simulation.EventStorm:
		return CueStorm, true
	case simulation.EventChaos:
		return CueChaos, true
	case simulation.EventModeChange:
		return CueMode, true
	}
	return 0, false
}

// Streamer builds the sound for cue. team shifts the pitch so both sides are
// told apart by ear.
func Streamer(c Cue, team entity.Team, rate beep.SampleRate) beep.Streamer {
	p := 1.0
	if team == entity.Opponent {
		p = opponentPitch
	}
	ms := time.Millisecond

	switch c {
	case CuePickup:
		return newVolume(tone(660*p, 990*p, 60*ms, WaveSine, rate), 0.35)
	case CueSteal:
		return newVolume(tone(520*p, 260*p, 120*ms, WaveSaw, rate), 0.3)
	case CueDeposit:
		return newVolume(beep.Seq(
			tone(784*p, 784*p, 70*ms, WaveSquare, rate),
			tone(1046*p, 1046*p, 110*ms, WaveSquare, rate),
		), 0.25)
	case CueDrop:
		return newVolume(tone(200, 200, 90*ms, WaveNoise, rate), 0.3)
	case CueLevelUp:
		return newVolume(beep.Seq(
			tone(523*p, 523*p, 90*ms, WaveTriangle, rate),
			tone(659*p, 659*p, 90*ms, WaveTriangle, rate),
			tone(784*p, 784*p, 90*ms, WaveTriangle, rate),
			tone(1046*p, 1046*p, 220*ms, WaveTriangle, rate),
		), 0.5)
	case CueWave:
		return newVolume(tone(110, 165, 400*ms, WaveSine, rate), 0.5)
	case CueReinforce:
		return newVolume(beep.Mix(
			tone(392*p, 392*p, 160*ms, WaveSine, rate),
			newVolume(tone(784*p, 784*p, 160*ms, WaveSine, rate), 0.4),
		), 0.3)
	case CueStorm:
		return newVolume(beep.Mix(
			tone(300, 300, 700*ms, WaveNoise, rate),
			tone(60, 45, 700*ms, WaveSine, rate),
		), 0.25)
	case CueChaos:
		return newVolume(beep.Mix(
			tone(900, 40, 500*ms, WaveSaw, rate),
			tone(500, 500, 500*ms, WaveNoise, rate),
		), 0.35)
	case CueMode:
		return newVolume(tone(440*p, 330*p, 80*ms, WaveTriangle, rate), 0.2)
	}
	return nil
}

// Selector picks which cues of a frame are worth playing: at most one per cue
// and team, and no cue again within its cooldown.
type Selector struct {
	Cooldown time.Duration
	last     [cueCount][2]time.Time
}

// Play is one cue to be played.
type Play struct {
	Cue  Cue
	Team entity.Team
}

// Select filters events into plays, recording now as their play time.
func (s *Selector) Select(events []simulation.Event, now time.Time) []Play {
	var out []Play
	for _, e := range events {
		c, ok := CueFor(e)
		if !ok {
			continue
		}
		slot := 0
		if e.Team == entity.Opponent {
			slot = 1
		}
		if last := s.last[c][slot]; !last.IsZero() && now.Sub(last) < s.Cooldown {
			continue
		}
		s.last[c][slot] = now
		out = append(out, Play{Cue: c, Team: e.Team})
	}
	return out
}
