package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DailyCheckin records one completed day. CheckinDate is always UTC
// midnight; the unique (user_id, checkin_date) index is what arbitrates
// concurrent same-day check-ins. Rows are immutable once inserted.
type DailyCheckin struct {
	bun.BaseModel `bun:"table:daily_checkins,alias:dc"`

	ID          string    `bun:"id,pk"`
	UserID      string    `bun:"user_id,notnull"`
	CheckinDate time.Time `bun:"checkin_date,notnull"`
	CompletedAt time.Time `bun:"completed_at,notnull,default:current_timestamp"`
}
