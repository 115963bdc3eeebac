package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another
// user. The two cases are deliberately indistinguishable so lookups never
// leak the existence of other users' records.
var ErrNotFound = errors.New("record not found")

type HabitRepository interface {
	Create(ctx context.Context, habit *models.Habit) error
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Habit, error)
	GetActiveByUser(ctx context.Context, userID string) ([]*models.Habit, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, habit *models.Habit) error
	Deactivate(ctx context.Context, id, userID string) error
}

type habitRepository struct {
	db *bun.DB
}

func NewHabitRepository(db *bun.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *models.Habit) error {
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(habit).Exec(ctx)
	return err
}

func (r *habitRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Habit, error) {
	habit := new(models.Habit)
	err := r.db.NewSelect().
		Model(habit).
		Where("id = ? AND user_id = ?", id, userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("Database error when getting habit",
			slog.String("type", "db"),
			slog.String("operation", "GetByIDForUser"),
			slog.String("habit_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) GetActiveByUser(ctx context.Context, userID string) ([]*models.Habit, error) {
	var habits []*models.Habit
	err := r.db.NewSelect().
		Model(&habits).
		Where("user_id = ? AND is_active = TRUE", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	return r.db.NewSelect().
		Model((*models.Habit)(nil)).
		Where("user_id = ? AND is_active = TRUE", userID).
		Count(ctx)
}

func (r *habitRepository) Update(ctx context.Context, habit *models.Habit) error {
	res, err := r.db.NewUpdate().
		Model(habit).
		Column("name", "minimum_action", "emoji").
		Where("id = ? AND user_id = ?", habit.ID, habit.UserID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *habitRepository) Deactivate(ctx context.Context, id, userID string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Habit)(nil)).
		Set("is_active = FALSE").
		Where("id = ? AND user_id = ?", id, userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
