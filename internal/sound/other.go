//go:build !linux && !darwin

// Fallback for platforms without a native audio command.
package sound

// newPlatformPlayer returns nil on unsupported platforms, which New turns
// into a no-op player.
func newPlatformPlayer() Player {
	return nil
}
