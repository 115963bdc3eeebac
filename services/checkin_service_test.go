package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	dbmodels "github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/leveling"
)

func newCheckinFixture() (*CheckinService, *ProgressService) {
	checkins := repositories.NewMemoryCheckinRepository()
	progress := repositories.NewMemoryProgressRepository()
	calc := leveling.NewCalculator(leveling.NewDefaultConfig())

	return NewCheckinService(checkins, progress, database.NopTxRunner{}, calc),
		NewProgressService(progress, checkins, calc)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func Test_CheckinService_FirstCheckin(t *testing.T) {
	svc, _ := newCheckinFixture()
	ctx := context.Background()

	result, err := svc.CheckIn(ctx, "user-1", at(2025, time.May, 1, 9))
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}
	if result.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", result.LongestStreak)
	}
	if result.TotalXP != 10 {
		t.Errorf("TotalXP = %d, want 10", result.TotalXP)
	}
	if result.XPAwarded != 10 {
		t.Errorf("XPAwarded = %d, want 10", result.XPAwarded)
	}
	if result.Level != 1 {
		t.Errorf("Level = %d, want 1", result.Level)
	}
	if result.TotalDaysCompleted != 1 {
		t.Errorf("TotalDaysCompleted = %d, want 1", result.TotalDaysCompleted)
	}
}

func Test_CheckinService_SameDayIsRejected(t *testing.T) {
	svc, progressSvc := newCheckinFixture()
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, "user-1", at(2025, time.May, 1, 9))
	if err != nil {
		t.Fatalf("first CheckIn() error = %v", err)
	}

	// Later the same UTC day, even near midnight.
	_, err = svc.CheckIn(ctx, "user-1", at(2025, time.May, 1, 23))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second CheckIn() error = %v, want ErrAlreadyCheckedIn", err)
	}

	// The failed attempt must not have touched progress.
	view, err := progressSvc.GetProgress(ctx, "user-1", at(2025, time.May, 1, 23))
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if view.CurrentStreak != first.CurrentStreak || view.TotalXP != first.TotalXP ||
		view.TotalDaysCompleted != first.TotalDaysCompleted {
		t.Errorf("progress changed by rejected check-in: %+v vs %+v", view, first)
	}
}

func Test_CheckinService_StreakProgression(t *testing.T) {
	tests := []struct {
		name        string
		days        []time.Time
		wantStreak  int
		wantLongest int
	}{
		{
			name: "ConsecutiveDaysExtend",
			days: []time.Time{
				at(2025, time.May, 1, 8),
				at(2025, time.May, 2, 21),
				at(2025, time.May, 3, 7),
			},
			wantStreak:  3,
			wantLongest: 3,
		},
		{
			name: "SingleMissedDayResets",
			days: []time.Time{
				at(2025, time.May, 1, 8),
				at(2025, time.May, 2, 8),
				at(2025, time.May, 4, 8),
			},
			wantStreak:  1,
			wantLongest: 2,
		},
		{
			name: "LongGapResets",
			days: []time.Time{
				at(2025, time.May, 1, 8),
				at(2025, time.June, 20, 8),
			},
			wantStreak:  1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCheckinFixture()
			ctx := context.Background()

			var last *CheckinResult
			for _, day := range tt.days {
				result, err := svc.CheckIn(ctx, "user-1", day)
				if err != nil {
					t.Fatalf("CheckIn(%v) error = %v", day, err)
				}
				last = result
			}

			if last.CurrentStreak != tt.wantStreak {
				t.Errorf("CurrentStreak = %d, want %d", last.CurrentStreak, tt.wantStreak)
			}
			if last.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", last.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func Test_CheckinService_LevelUpAt50XP(t *testing.T) {
	svc, _ := newCheckinFixture()
	ctx := context.Background()

	// Five consecutive check-ins reach exactly 50 XP, the level 2 boundary.
	var result *CheckinResult
	var err error
	for i := 0; i < 5; i++ {
		result, err = svc.CheckIn(ctx, "user-1", at(2025, time.May, 1+i, 9))
		if err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
	}

	if result.TotalXP != 50 {
		t.Errorf("TotalXP = %d, want 50", result.TotalXP)
	}
	if result.Level != 2 {
		t.Errorf("Level = %d, want 2", result.Level)
	}
	if result.ProgressToNextLevel != 0 {
		t.Errorf("ProgressToNextLevel = %d, want 0 at an exact boundary", result.ProgressToNextLevel)
	}

	// One more lands 10 XP into level 2.
	result, err = svc.CheckIn(ctx, "user-1", at(2025, time.May, 6, 9))
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if result.Level != 2 || result.ProgressToNextLevel != 20 {
		t.Errorf("Level/Progress = %d/%d, want 2/20", result.Level, result.ProgressToNextLevel)
	}
}

// conflictingCheckinRepository simulates losing a same-day race: the
// pre-check sees no row, but by insert time a concurrent request has
// taken the (user_id, checkin_date) slot.
type conflictingCheckinRepository struct{}

func (conflictingCheckinRepository) GetByUserAndDate(context.Context, string, time.Time) (*dbmodels.DailyCheckin, error) {
	return nil, repositories.ErrNotFound
}

func (conflictingCheckinRepository) InsertTx(context.Context, bun.IDB, *dbmodels.DailyCheckin) error {
	return database.ErrUniqueViolation
}

func (conflictingCheckinRepository) GetSince(context.Context, string, time.Time) ([]*dbmodels.DailyCheckin, error) {
	return nil, nil
}

func Test_CheckinService_InsertConflictMeansAlreadyCheckedIn(t *testing.T) {
	progress := repositories.NewMemoryProgressRepository()
	calc := leveling.NewCalculator(leveling.NewDefaultConfig())
	svc := NewCheckinService(conflictingCheckinRepository{}, progress, database.NopTxRunner{}, calc)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "user-1", at(2025, time.May, 1, 9))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("CheckIn() error = %v, want ErrAlreadyCheckedIn", err)
	}

	// The losing request must leave progress untouched; the winner's
	// transaction already advanced it.
	stored, err := progress.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if stored.CurrentStreak != 0 || stored.TotalXP != 0 || stored.TotalDaysCompleted != 0 {
		t.Errorf("progress advanced by losing request: %+v", stored)
	}
	if stored.LastCheckinDate != nil {
		t.Errorf("LastCheckinDate = %v, want nil", *stored.LastCheckinDate)
	}
}

func Test_CheckinService_ProgressMatchesCheckinResult(t *testing.T) {
	svc, progressSvc := newCheckinFixture()
	ctx := context.Background()
	now := at(2025, time.May, 10, 12)

	result, err := svc.CheckIn(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	view, err := progressSvc.GetProgress(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}

	if view.CurrentStreak != result.CurrentStreak ||
		view.LongestStreak != result.LongestStreak ||
		view.Level != result.Level ||
		view.TotalXP != result.TotalXP ||
		view.ProgressToNextLevel != result.ProgressToNextLevel ||
		view.TotalDaysCompleted != result.TotalDaysCompleted {
		t.Errorf("GetProgress() = %+v does not reflect CheckIn() = %+v", view, result)
	}
	if view.CanCheckinToday {
		t.Error("CanCheckinToday = true right after checking in")
	}
}
