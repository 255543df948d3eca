// Package sound provides audio feedback for quest events. It shells out to
// native system players on macOS (afplay) and Linux (canberra/paplay) and
// degrades to a no-op where no player is available. The player is built
// once and handed to the UI; engine code never touches audio.
package sound

// Cue identifies an audio event.
type Cue string

const (
	CueStartTracking Cue = "start-tracking"
	CueTaskComplete  Cue = "task-complete"
	CueQuestComplete Cue = "quest-complete"
	CueLevelUp       Cue = "level-up"
)

// Player defines the interface for playing audio cues.
type Player interface {
	// Play plays the cue for the given event. Errors are best-effort
	// and safe to ignore; audio never blocks a mutation.
	Play(cue Cue) error

	// IsSupported returns true if audio playback is available.
	IsSupported() bool
}

type noopPlayer struct{}

func (p *noopPlayer) Play(cue Cue) error { return nil }

func (p *noopPlayer) IsSupported() bool { return false }

// New creates a platform-specific player. Returns a no-op player when the
// platform has no usable audio command or sound is disabled.
func New(enabled bool) Player {
	if !enabled {
		return &noopPlayer{}
	}
	p := newPlatformPlayer()
	if p == nil || !p.IsSupported() {
		return &noopPlayer{}
	}
	return p
}
