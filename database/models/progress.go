package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserProgress is the single per-user accumulator row. TotalXP is the
// source of truth for levels; CurrentLevel is a cached derivation and is
// recomputed from TotalXP wherever a level is displayed.
type UserProgress struct {
	bun.BaseModel `bun:"table:user_progress,alias:up"`

	ID                 string     `bun:"id,pk"`
	UserID             string     `bun:"user_id,notnull,unique"`
	CurrentStreak      int        `bun:"current_streak,notnull,default:0"`
	LongestStreak      int        `bun:"longest_streak,notnull,default:0"`
	TotalXP            int64      `bun:"total_xp,notnull,default:0"`
	CurrentLevel       int        `bun:"current_level,notnull,default:1"`
	TotalDaysCompleted int        `bun:"total_days_completed,notnull,default:0"`
	LastCheckinDate    *time.Time `bun:"last_checkin_date"`
}
