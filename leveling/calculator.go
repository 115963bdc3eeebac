package leveling

import (
	"math"
	"time"
)

type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	return &Calculator{config: config}
}

// LevelInfo derives the level view for a cumulative XP total. It is the only
// place levels are computed; stored level columns are treated as a cache and
// never read back for display.
func (c *Calculator) LevelInfo(totalXP int64) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := int(totalXP/c.config.XPPerLevel) + 1
	xpIntoLevel := totalXP - int64(level-1)*c.config.XPPerLevel
	percent := int(math.Round(float64(xpIntoLevel) / float64(c.config.XPPerLevel) * 100))

	return LevelInfo{
		Level:              level,
		TotalXP:            totalXP,
		XPIntoLevel:        xpIntoLevel,
		XPNeededForLevel:   c.config.XPPerLevel,
		PercentToNextLevel: percent,
	}
}

// CheckinXP returns the XP awarded for one daily check-in.
func (c *Calculator) CheckinXP() int64 {
	return c.config.XPPerCheckin
}

// NextStreak applies a check-in happening on day today to the prior streak
// state. lastCheckin is nil when the user has never checked in. A check-in
// always yields a streak of at least 1: it extends the streak when the last
// check-in was exactly yesterday and resets to 1 on any gap. The longest
// streak never decreases.
func (c *Calculator) NextStreak(lastCheckin *time.Time, currentStreak, longestStreak int, today time.Time) StreakResult {
	today = DateOnly(today)

	newStreak := 1
	if lastCheckin != nil {
		yesterday := today.AddDate(0, 0, -1)
		if DateOnly(*lastCheckin).Equal(yesterday) {
			newStreak = currentStreak + 1
		}
	}

	newLongest := longestStreak
	if newStreak > newLongest {
		newLongest = newStreak
	}

	return StreakResult{Streak: newStreak, Longest: newLongest}
}
