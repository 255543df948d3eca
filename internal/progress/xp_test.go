package progress

import "testing"

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 50},
		{3, 125},
		{4, 225},
		{5, 375},
		{6, 425},   // plateau band starts at 50/level
		{10, 625},  // 375 + 5*50
		{11, 700},  // 75/level band
		{20, 1375}, // 625 + 10*75
		{21, 1475}, // 100/level band
		{50, 4375}, // 1375 + 30*100
		{51, 4525}, // 150/level band
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{-10, 1},
		{0, 1},
		{49, 1},
		{50, 2},
		{124, 2},
		{125, 3},
		{374, 4},
		{375, 5},
		{424, 5},
		{425, 6},
		{1375, 20},
		{4375, 50},
	}

	for _, tt := range tests {
		if got := LevelFromXP(tt.xp); got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

// LevelFromXP and XPForLevel must agree at every boundary.
func TestLevelBoundariesRoundTrip(t *testing.T) {
	for level := 1; level <= 60; level++ {
		floor := XPForLevel(level)
		if got := LevelFromXP(floor); got != level {
			t.Errorf("LevelFromXP(XPForLevel(%d)) = %d, want %d", level, got, level)
		}
		if level > 1 {
			if got := LevelFromXP(floor - 1); got != level-1 {
				t.Errorf("LevelFromXP(%d) = %d, want %d", floor-1, got, level-1)
			}
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	if got := XPToNextLevel(0); got != 50 {
		t.Errorf("XPToNextLevel(0) = %d, want 50", got)
	}
	if got := XPToNextLevel(45); got != 5 {
		t.Errorf("XPToNextLevel(45) = %d, want 5", got)
	}
	if got := XPToNextLevel(50); got != 75 {
		t.Errorf("XPToNextLevel(50) = %d, want 75", got)
	}
}

func TestLevelProgress(t *testing.T) {
	earned, needed := LevelProgress(60)
	if earned != 10 {
		t.Errorf("earned = %d, want 10", earned)
	}
	if needed != 75 {
		t.Errorf("needed = %d, want 75", needed)
	}

	earned, needed = LevelProgress(0)
	if earned != 0 || needed != 50 {
		t.Errorf("LevelProgress(0) = (%d, %d), want (0, 50)", earned, needed)
	}
}
