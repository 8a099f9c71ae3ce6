package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

const (
	sampleRate = beep.SampleRate(48000)
	// DefaultCooldown keeps busy frames from stacking the same cue.
	DefaultCooldown = 80 * time.Millisecond
)

// Manager plays match cues through one mixer on the speaker.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	selector    Selector
	volume      float64
	initialized bool
}

// NewManager creates a manager at the given master volume (0..1).
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:    &beep.Mixer{},
		selector: Selector{Cooldown: DefaultCooldown},
		volume:   max(0, min(1, volume)),
	}
}

// Initialize opens the speaker and starts the mixer.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	m.ctrl = &beep.Ctrl{Streamer: newVolume(m.mixer, m.volume)}
	speaker.Play(m.ctrl)
	m.initialized = true
	return nil
}

// SetMuted pauses or resumes the whole mix.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = muted
	speaker.Unlock()
}

// PlayEvents queues the cues for a frame of events.
func (m *Manager) PlayEvents(events []simulation.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || len(events) == 0 {
		return
	}
	plays := m.selector.Select(events, time.Now())
	if len(plays) == 0 {
		return
	}
	speaker.Lock()
	for _, p := range plays {
		if s := Streamer(p.Cue, p.Team, sampleRate); s != nil {
			m.mixer.Add(s)
		}
	}
	speaker.Unlock()
}

// Cleanup stops all sounds and closes the speaker.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.mixer.Clear()
	speaker.Close()
	m.initialized = false
}
