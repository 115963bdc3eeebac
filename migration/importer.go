package migration

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
	"github.com/tom73737/non-zero-days-app-jkqfrv/leveling"
)

// Importer copies habit and check-in data from the legacy mobile backend's
// MongoDB into Postgres, then rebuilds every user's progress row by
// replaying the streak/XP rules over their check-in history. Progress is
// derived state, so replaying beats trusting whatever counters the legacy
// system stored.
type Importer struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	calc      *leveling.Calculator
	batchSize int

	stats ImportStats
}

type ImportStats struct {
	Habits    int
	Checkins  int
	Users     int
	StartTime time.Time
}

// legacyHabit mirrors the legacy "habits" collection document shape.
type legacyHabit struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"userId"`
	Name          string    `bson:"name"`
	MinimumAction string    `bson:"minimumAction"`
	Emoji         *string   `bson:"emoji,omitempty"`
	IsActive      bool      `bson:"isActive"`
	CreatedAt     time.Time `bson:"createdAt"`
}

// legacyCheckin mirrors the legacy "checkins" collection document shape.
type legacyCheckin struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	Date        time.Time `bson:"date"`
	CompletedAt time.Time `bson:"completedAt"`
}

func NewImporter(pgDB *bun.DB, mongoDB *mongo.Database) *Importer {
	return &Importer{
		pgDB:      pgDB,
		mongoDB:   mongoDB,
		calc:      leveling.NewCalculator(leveling.NewDefaultConfig()),
		batchSize: 500,
		stats:     ImportStats{StartTime: time.Now()},
	}
}

func (i *Importer) SetBatchSize(size int) {
	if size > 0 {
		i.batchSize = size
	}
}

// Run performs the full import. It is meant for a one-shot cutover against
// an empty target database.
func (i *Importer) Run(ctx context.Context) error {
	if err := i.importHabits(ctx); err != nil {
		return fmt.Errorf("habit import failed: %w", err)
	}
	if err := i.importCheckins(ctx); err != nil {
		return fmt.Errorf("check-in import failed: %w", err)
	}
	if err := i.rebuildProgress(ctx); err != nil {
		return fmt.Errorf("progress rebuild failed: %w", err)
	}

	slog.Info("Import complete",
		slog.Int("habits", i.stats.Habits),
		slog.Int("checkins", i.stats.Checkins),
		slog.Int("users", i.stats.Users),
		slog.Duration("took", time.Since(i.stats.StartTime)))

	return nil
}

func (i *Importer) importHabits(ctx context.Context) error {
	cursor, err := i.mongoDB.Collection("habits").Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query legacy habits: %w", err)
	}
	defer cursor.Close(ctx)

	batch := make([]*models.Habit, 0, i.batchSize)
	for cursor.Next(ctx) {
		var doc legacyHabit
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("Skipping undecodable habit document",
				slog.String("type", "db"),
				slog.Any("error", err))
			continue
		}

		batch = append(batch, &models.Habit{
			ID:            doc.ID,
			UserID:        doc.UserID,
			Name:          doc.Name,
			MinimumAction: doc.MinimumAction,
			Emoji:         doc.Emoji,
			IsActive:      doc.IsActive,
			CreatedAt:     doc.CreatedAt.UTC(),
		})

		if len(batch) >= i.batchSize {
			if err := i.flushHabits(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("legacy habit cursor failed: %w", err)
	}
	if len(batch) > 0 {
		if err := i.flushHabits(ctx, batch); err != nil {
			return err
		}
	}

	slog.Info("Habits imported", slog.Int("count", i.stats.Habits))
	return nil
}

func (i *Importer) flushHabits(ctx context.Context, batch []*models.Habit) error {
	_, err := i.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert habit batch: %w", err)
	}
	i.stats.Habits += len(batch)
	return nil
}

func (i *Importer) importCheckins(ctx context.Context) error {
	cursor, err := i.mongoDB.Collection("checkins").Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query legacy checkins: %w", err)
	}
	defer cursor.Close(ctx)

	seen := make(map[string]map[time.Time]bool)
	batch := make([]*models.DailyCheckin, 0, i.batchSize)

	for cursor.Next(ctx) {
		var doc legacyCheckin
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("Skipping undecodable check-in document",
				slog.String("type", "db"),
				slog.Any("error", err))
			continue
		}

		day := leveling.DateOnly(doc.Date)

		// The legacy store had no uniqueness constraint; collapse
		// duplicate same-day rows before they hit ours.
		if seen[doc.UserID] == nil {
			seen[doc.UserID] = make(map[time.Time]bool)
		}
		if seen[doc.UserID][day] {
			continue
		}
		seen[doc.UserID][day] = true

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}

		batch = append(batch, &models.DailyCheckin{
			ID:          id,
			UserID:      doc.UserID,
			CheckinDate: day,
			CompletedAt: doc.CompletedAt.UTC(),
		})

		if len(batch) >= i.batchSize {
			if err := i.flushCheckins(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("legacy check-in cursor failed: %w", err)
	}
	if len(batch) > 0 {
		if err := i.flushCheckins(ctx, batch); err != nil {
			return err
		}
	}

	slog.Info("Check-ins imported", slog.Int("count", i.stats.Checkins))
	return nil
}

func (i *Importer) flushCheckins(ctx context.Context, batch []*models.DailyCheckin) error {
	_, err := i.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert check-in batch: %w", err)
	}
	i.stats.Checkins += len(batch)
	return nil
}

// rebuildProgress derives each user's UserProgress row from their imported
// check-in history by replaying the streak and XP rules day by day.
func (i *Importer) rebuildProgress(ctx context.Context) error {
	var checkins []*models.DailyCheckin
	err := i.pgDB.NewSelect().
		Model(&checkins).
		Order("user_id ASC", "checkin_date ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to load imported check-ins: %w", err)
	}

	byUser := make(map[string][]time.Time)
	for _, checkin := range checkins {
		byUser[checkin.UserID] = append(byUser[checkin.UserID], checkin.CheckinDate)
	}

	for userID, days := range byUser {
		sort.Slice(days, func(a, b int) bool { return days[a].Before(days[b]) })

		progress := ReplayProgress(i.calc, userID, days)
		_, err := i.pgDB.NewInsert().
			Model(progress).
			On("CONFLICT (user_id) DO UPDATE").
			Set("current_streak = EXCLUDED.current_streak").
			Set("longest_streak = EXCLUDED.longest_streak").
			Set("total_xp = EXCLUDED.total_xp").
			Set("current_level = EXCLUDED.current_level").
			Set("total_days_completed = EXCLUDED.total_days_completed").
			Set("last_checkin_date = EXCLUDED.last_checkin_date").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert progress for user %s: %w", userID, err)
		}
		i.stats.Users++
	}

	slog.Info("Progress rebuilt", slog.Int("users", i.stats.Users))
	return nil
}

// ReplayProgress folds a sorted list of check-in days through the streak
// and XP rules, producing the progress row those check-ins would have
// built up.
func ReplayProgress(calc *leveling.Calculator, userID string, sortedDays []time.Time) *models.UserProgress {
	progress := &models.UserProgress{
		ID:           uuid.NewString(),
		UserID:       userID,
		CurrentLevel: 1,
	}

	for _, day := range sortedDays {
		streak := calc.NextStreak(progress.LastCheckinDate, progress.CurrentStreak, progress.LongestStreak, day)

		progress.CurrentStreak = streak.Streak
		progress.LongestStreak = streak.Longest
		progress.TotalXP += calc.CheckinXP()
		progress.TotalDaysCompleted++

		d := day
		progress.LastCheckinDate = &d
	}

	progress.CurrentLevel = calc.LevelInfo(progress.TotalXP).Level
	return progress
}
