package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	dbmodels "github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/leveling"
)

// CheckinResult is returned from a successful daily check-in.
type CheckinResult struct {
	CurrentStreak       int   `json:"currentStreak"`
	LongestStreak       int   `json:"longestStreak"`
	Level               int   `json:"level"`
	TotalXP             int64 `json:"totalXp"`
	ProgressToNextLevel int   `json:"progressToNextLevel"`
	TotalDaysCompleted  int   `json:"totalDaysCompleted"`
	XPAwarded           int64 `json:"xpAwarded"`
}

// CheckinService performs the one mutation of the system: recording a daily
// check-in and advancing streak and XP state atomically.
type CheckinService struct {
	checkins repositories.CheckinRepository
	progress repositories.ProgressRepository
	tx       database.TxRunner
	calc     *leveling.Calculator
}

func NewCheckinService(
	checkins repositories.CheckinRepository,
	progress repositories.ProgressRepository,
	tx database.TxRunner,
	calc *leveling.Calculator,
) *CheckinService {
	return &CheckinService{
		checkins: checkins,
		progress: progress,
		tx:       tx,
		calc:     calc,
	}
}

// CheckIn records a check-in for the calendar day containing now.
//
// The existence pre-check runs before any streak computation so a same-day
// repeat never reaches the streak engine. Two concurrent requests can both
// pass the pre-check; the unique index then rejects the second insert and
// the violation is translated into the same ErrAlreadyCheckedIn the
// pre-check produces. Insert and progress update share one transaction so
// the check-in count and totalDaysCompleted cannot drift apart.
func (s *CheckinService) CheckIn(ctx context.Context, userID string, now time.Time) (*CheckinResult, error) {
	today := leveling.DateOnly(now)

	_, err := s.checkins.GetByUserAndDate(ctx, userID, today)
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up today's check-in: %w", err)
	}

	progress, err := s.progress.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user progress: %w", err)
	}

	streak := s.calc.NextStreak(progress.LastCheckinDate, progress.CurrentStreak, progress.LongestStreak, today)

	xpAwarded := s.calc.CheckinXP()
	newTotalXP := progress.TotalXP + xpAwarded
	info := s.calc.LevelInfo(newTotalXP)

	progress.CurrentStreak = streak.Streak
	progress.LongestStreak = streak.Longest
	progress.TotalXP = newTotalXP
	progress.CurrentLevel = info.Level
	progress.TotalDaysCompleted++
	progress.LastCheckinDate = &today

	checkin := &dbmodels.DailyCheckin{
		ID:          uuid.NewString(),
		UserID:      userID,
		CheckinDate: today,
		CompletedAt: now.UTC(),
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.IDB) error {
		if err := s.checkins.InsertTx(ctx, tx, checkin); err != nil {
			return err
		}
		return s.progress.UpdateTx(ctx, tx, progress)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			// Lost the race against a concurrent check-in.
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	slog.Info("Check-in recorded",
		slog.String("user_id", userID),
		slog.Int("streak", streak.Streak),
		slog.Int64("total_xp", newTotalXP),
		slog.Int("level", info.Level))

	return &CheckinResult{
		CurrentStreak:       progress.CurrentStreak,
		LongestStreak:       progress.LongestStreak,
		Level:               info.Level,
		TotalXP:             newTotalXP,
		ProgressToNextLevel: info.PercentToNextLevel,
		TotalDaysCompleted:  progress.TotalDaysCompleted,
		XPAwarded:           xpAwarded,
	}, nil
}
