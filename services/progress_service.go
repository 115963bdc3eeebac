package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/leveling"
)

const historyWindowDays = 30

// ProgressView is the read-only snapshot served to clients. Level and
// percent are derived from TotalXP on every read, never trusted from the
// stored level column.
type ProgressView struct {
	CurrentStreak       int     `json:"currentStreak"`
	LongestStreak       int     `json:"longestStreak"`
	Level               int     `json:"level"`
	TotalXP             int64   `json:"totalXp"`
	ProgressToNextLevel int     `json:"progressToNextLevel"`
	TotalDaysCompleted  int     `json:"totalDaysCompleted"`
	LastCheckinDate     *string `json:"lastCheckinDate"`
	CanCheckinToday     bool    `json:"canCheckinToday"`
}

// HistoryEntry is one day in the trailing check-in history.
type HistoryEntry struct {
	CheckinDate string `json:"checkinDate"`
	CompletedAt string `json:"completedAt"`
}

type ProgressService struct {
	progress repositories.ProgressRepository
	checkins repositories.CheckinRepository
	calc     *leveling.Calculator
}

func NewProgressService(
	progress repositories.ProgressRepository,
	checkins repositories.CheckinRepository,
	calc *leveling.Calculator,
) *ProgressService {
	return &ProgressService{
		progress: progress,
		checkins: checkins,
		calc:     calc,
	}
}

// GetProgress returns the user's current state, lazily creating a zeroed
// progress row on first access.
func (s *ProgressService) GetProgress(ctx context.Context, userID string, now time.Time) (*ProgressView, error) {
	progress, err := s.progress.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user progress: %w", err)
	}

	info := s.calc.LevelInfo(progress.TotalXP)

	checkedInToday := progress.LastCheckinDate != nil &&
		leveling.SameDay(*progress.LastCheckinDate, now)

	var lastCheckin *string
	if progress.LastCheckinDate != nil {
		formatted := progress.LastCheckinDate.UTC().Format(time.RFC3339)
		lastCheckin = &formatted
	}

	return &ProgressView{
		CurrentStreak:       progress.CurrentStreak,
		LongestStreak:       progress.LongestStreak,
		Level:               info.Level,
		TotalXP:             progress.TotalXP,
		ProgressToNextLevel: info.PercentToNextLevel,
		TotalDaysCompleted:  progress.TotalDaysCompleted,
		LastCheckinDate:     lastCheckin,
		CanCheckinToday:     !checkedInToday,
	}, nil
}

// GetHistory returns the trailing 30 calendar days of check-ins, newest
// first.
func (s *ProgressService) GetHistory(ctx context.Context, userID string, now time.Time) ([]HistoryEntry, error) {
	since := leveling.DateOnly(now).AddDate(0, 0, -historyWindowDays)

	checkins, err := s.checkins.GetSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in history: %w", err)
	}

	history := make([]HistoryEntry, 0, len(checkins))
	for _, checkin := range checkins {
		history = append(history, HistoryEntry{
			CheckinDate: checkin.CheckinDate.UTC().Format(time.DateOnly),
			CompletedAt: checkin.CompletedAt.UTC().Format(time.RFC3339),
		})
	}

	return history, nil
}
