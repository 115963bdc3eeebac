package leveling

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Test_Calculator_LevelInfo(t *testing.T) {
	tests := []struct {
		name        string
		totalXP     int64
		wantLevel   int
		wantInto    int64
		wantPercent int
	}{
		{name: "Zero", totalXP: 0, wantLevel: 1, wantInto: 0, wantPercent: 0},
		{name: "MidFirstLevel", totalXP: 30, wantLevel: 1, wantInto: 30, wantPercent: 60},
		{name: "ExactBoundary", totalXP: 50, wantLevel: 2, wantInto: 0, wantPercent: 0},
		{name: "JustPastBoundary", totalXP: 55, wantLevel: 2, wantInto: 5, wantPercent: 10},
		{name: "RoundsUp", totalXP: 33, wantLevel: 1, wantInto: 33, wantPercent: 66},
		{name: "HighLevel", totalXP: 1045, wantLevel: 21, wantInto: 45, wantPercent: 90},
		{name: "NegativeClamped", totalXP: -10, wantLevel: 1, wantInto: 0, wantPercent: 0},
	}

	c := NewCalculator(NewDefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.LevelInfo(tt.totalXP)
			if got.Level != tt.wantLevel {
				t.Errorf("LevelInfo(%d).Level = %d, want %d", tt.totalXP, got.Level, tt.wantLevel)
			}
			if got.XPIntoLevel != tt.wantInto {
				t.Errorf("LevelInfo(%d).XPIntoLevel = %d, want %d", tt.totalXP, got.XPIntoLevel, tt.wantInto)
			}
			if got.PercentToNextLevel != tt.wantPercent {
				t.Errorf("LevelInfo(%d).PercentToNextLevel = %d, want %d", tt.totalXP, got.PercentToNextLevel, tt.wantPercent)
			}
			if got.XPNeededForLevel != 50 {
				t.Errorf("LevelInfo(%d).XPNeededForLevel = %d, want 50", tt.totalXP, got.XPNeededForLevel)
			}
		})
	}
}

func Test_Calculator_LevelInfo_PercentBounds(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())
	for xp := int64(0); xp <= 500; xp++ {
		info := c.LevelInfo(xp)
		if info.PercentToNextLevel < 0 || info.PercentToNextLevel > 100 {
			t.Fatalf("LevelInfo(%d).PercentToNextLevel = %d, out of [0,100]", xp, info.PercentToNextLevel)
		}
		if (xp%50 == 0) != (info.PercentToNextLevel == 0) {
			t.Fatalf("LevelInfo(%d).PercentToNextLevel = %d, want 0 exactly at level boundaries", xp, info.PercentToNextLevel)
		}
	}
}

func Test_Calculator_NextStreak(t *testing.T) {
	today := day(2025, time.March, 10)
	yesterday := day(2025, time.March, 9)
	twoDaysAgo := day(2025, time.March, 8)

	tests := []struct {
		name        string
		lastCheckin *time.Time
		current     int
		longest     int
		wantStreak  int
		wantLongest int
	}{
		{name: "FirstEver", lastCheckin: nil, current: 0, longest: 0, wantStreak: 1, wantLongest: 1},
		{name: "Consecutive", lastCheckin: &yesterday, current: 4, longest: 4, wantStreak: 5, wantLongest: 5},
		{name: "ConsecutiveBelowLongest", lastCheckin: &yesterday, current: 2, longest: 9, wantStreak: 3, wantLongest: 9},
		{name: "OneMissedDayResets", lastCheckin: &twoDaysAgo, current: 7, longest: 7, wantStreak: 1, wantLongest: 7},
		{name: "LongLapseResets", lastCheckin: ptr(day(2024, time.December, 25)), current: 30, longest: 30, wantStreak: 1, wantLongest: 30},
		{name: "SameDayResets", lastCheckin: &today, current: 3, longest: 3, wantStreak: 1, wantLongest: 3},
	}

	c := NewCalculator(NewDefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.NextStreak(tt.lastCheckin, tt.current, tt.longest, today)
			if got.Streak != tt.wantStreak {
				t.Errorf("NextStreak() streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("NextStreak() longest = %d, want %d", got.Longest, tt.wantLongest)
			}
		})
	}
}

func Test_Calculator_NextStreak_TimeOfDayIgnored(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())

	last := time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC)
	now := time.Date(2025, time.March, 10, 0, 0, 1, 0, time.UTC)

	got := c.NextStreak(&last, 1, 1, now)
	if got.Streak != 2 {
		t.Errorf("NextStreak() streak = %d, want 2 (calendar days are consecutive)", got.Streak)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
