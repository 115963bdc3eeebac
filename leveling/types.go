package leveling

// LevelInfo is the derived view of a cumulative XP total. Levels are
// 1-indexed; level N spans [(N-1)*XPPerLevel, N*XPPerLevel).
type LevelInfo struct {
	Level              int
	TotalXP            int64
	XPIntoLevel        int64
	XPNeededForLevel   int64
	PercentToNextLevel int
}

// StreakResult is the outcome of applying one check-in to a streak state.
type StreakResult struct {
	Streak  int
	Longest int
}
