//go:build darwin

// This file implements macOS audio cues using afplay and the built-in
// system sound set.
package sound

import (
	"fmt"
	"os/exec"
)

var darwinCueFiles = map[Cue]string{
	CueStartTracking: "/System/Library/Sounds/Tink.aiff",
	CueTaskComplete:  "/System/Library/Sounds/Pop.aiff",
	CueQuestComplete: "/System/Library/Sounds/Glass.aiff",
	CueLevelUp:       "/System/Library/Sounds/Hero.aiff",
}

type darwinPlayer struct{}

// newPlatformPlayer creates the macOS player.
func newPlatformPlayer() Player {
	return &darwinPlayer{}
}

// IsSupported returns true if afplay is available.
func (p *darwinPlayer) IsSupported() bool {
	_, err := exec.LookPath("afplay")
	return err == nil
}

// Play plays the cue asynchronously; the command's outcome is not waited on.
func (p *darwinPlayer) Play(cue Cue) error {
	file, ok := darwinCueFiles[cue]
	if !ok {
		return fmt.Errorf("unknown cue: %s", cue)
	}
	if err := exec.Command("afplay", file).Start(); err != nil {
		return fmt.Errorf("afplay failed: %w", err)
	}
	return nil
}
