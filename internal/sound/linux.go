//go:build linux

// This file implements Linux audio cues using canberra-gtk-play, falling
// back to paplay with the freedesktop sound theme.
package sound

import (
	"fmt"
	"os/exec"
)

// Event sound ids from the freedesktop sound naming spec. The mapping
// leans celebratory: completions ring, reversals stay silent.
var linuxCueIDs = map[Cue]string{
	CueStartTracking: "dialog-information",
	CueTaskComplete:  "message-new-instant",
	CueQuestComplete: "complete",
	CueLevelUp:       "bell",
}

type linuxPlayer struct{}

// newPlatformPlayer creates the Linux player.
func newPlatformPlayer() Player {
	return &linuxPlayer{}
}

// IsSupported returns true if a known audio command is available.
func (p *linuxPlayer) IsSupported() bool {
	if _, err := exec.LookPath("canberra-gtk-play"); err == nil {
		return true
	}
	_, err := exec.LookPath("paplay")
	return err == nil
}

// Play plays the cue asynchronously; the command's outcome is not waited on.
func (p *linuxPlayer) Play(cue Cue) error {
	id, ok := linuxCueIDs[cue]
	if !ok {
		return fmt.Errorf("unknown cue: %s", cue)
	}

	if _, err := exec.LookPath("canberra-gtk-play"); err == nil {
		return exec.Command("canberra-gtk-play", "--id", id).Start()
	}

	path := "/usr/share/sounds/freedesktop/stereo/" + id + ".oga"
	if err := exec.Command("paplay", path).Start(); err != nil {
		return fmt.Errorf("paplay failed: %w", err)
	}
	return nil
}
