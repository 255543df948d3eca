// Package progress implements the progression engine: XP and levels,
// streak multipliers, daily completion bonuses, and milestone tracking.
// All functions are pure; callers decide what to persist and notify.
package progress

// xpDelta returns the XP needed to go from level-1 to level. The curve is
// a step function, not a formula: early levels ramp 50/75/100/150, then
// the cost plateaus in bands.
func xpDelta(level int) int {
	switch {
	case level <= 1:
		return 0
	case level == 2:
		return 50
	case level == 3:
		return 75
	case level == 4:
		return 100
	case level == 5:
		return 150
	case level <= 10:
		return 50
	case level <= 20:
		return 75
	case level <= 50:
		return 100
	default:
		return 150
	}
}

// XPForLevel returns the cumulative XP required to reach the given level.
// Level 1 requires 0 XP.
func XPForLevel(level int) int {
	total := 0
	for l := 2; l <= level; l++ {
		total += xpDelta(l)
	}
	return total
}

// LevelFromXP returns the largest level whose cumulative requirement is
// at most xp. It never returns less than 1.
func LevelFromXP(xp int) int {
	if xp < 0 {
		return 1
	}
	level := 1
	total := 0
	for {
		next := total + xpDelta(level+1)
		if next > xp {
			return level
		}
		total = next
		level++
	}
}

// XPToNextLevel returns how much XP is still missing to reach the next
// level from the given cumulative XP.
func XPToNextLevel(xp int) int {
	return XPForLevel(LevelFromXP(xp)+1) - xp
}

// LevelProgress returns the XP earned within the current level and the
// size of the current level's band, for rendering a progress bar.
func LevelProgress(xp int) (earned, needed int) {
	level := LevelFromXP(xp)
	floor := XPForLevel(level)
	return xp - floor, XPForLevel(level+1) - floor
}
