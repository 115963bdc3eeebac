package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Habit is one of a user's micro-habits. Rows are never hard-deleted;
// removal flips IsActive off so check-in history keeps its context.
type Habit struct {
	bun.BaseModel `bun:"table:habits,alias:h"`

	ID            string    `bun:"id,pk"`
	UserID        string    `bun:"user_id,notnull"`
	Name          string    `bun:"name,notnull"`
	MinimumAction string    `bun:"minimum_action,notnull"`
	Emoji         *string   `bun:"emoji"`
	IsActive      bool      `bun:"is_active,notnull,default:true"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
