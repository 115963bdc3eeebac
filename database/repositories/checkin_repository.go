package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
)

type CheckinRepository interface {
	GetByUserAndDate(ctx context.Context, userID string, day time.Time) (*models.DailyCheckin, error)
	// InsertTx inserts inside the caller's transaction. The unique
	// (user_id, checkin_date) index surfaces concurrent duplicates as a
	// unique violation.
	InsertTx(ctx context.Context, tx bun.IDB, checkin *models.DailyCheckin) error
	GetSince(ctx context.Context, userID string, since time.Time) ([]*models.DailyCheckin, error)
}

type checkinRepository struct {
	db *bun.DB
}

func NewCheckinRepository(db *bun.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) GetByUserAndDate(ctx context.Context, userID string, day time.Time) (*models.DailyCheckin, error) {
	checkin := new(models.DailyCheckin)
	err := r.db.NewSelect().
		Model(checkin).
		Where("user_id = ? AND checkin_date = ?", userID, day).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return checkin, nil
}

func (r *checkinRepository) InsertTx(ctx context.Context, tx bun.IDB, checkin *models.DailyCheckin) error {
	_, err := tx.NewInsert().Model(checkin).Exec(ctx)
	return err
}

func (r *checkinRepository) GetSince(ctx context.Context, userID string, since time.Time) ([]*models.DailyCheckin, error) {
	var checkins []*models.DailyCheckin
	err := r.db.NewSelect().
		Model(&checkins).
		Where("user_id = ? AND checkin_date >= ?", userID, since).
		Order("checkin_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return checkins, nil
}
