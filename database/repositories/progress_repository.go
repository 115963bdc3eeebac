package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
)

type ProgressRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.UserProgress, error)
	// GetOrCreate returns the user's progress row, creating a zeroed one
	// on first access. Safe under concurrent first reads.
	GetOrCreate(ctx context.Context, userID string) (*models.UserProgress, error)
	UpdateTx(ctx context.Context, tx bun.IDB, progress *models.UserProgress) error
}

type progressRepository struct {
	db *bun.DB
}

func NewProgressRepository(db *bun.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetByUser(ctx context.Context, userID string) (*models.UserProgress, error) {
	progress := new(models.UserProgress)
	err := r.db.NewSelect().
		Model(progress).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return progress, nil
}

func (r *progressRepository) GetOrCreate(ctx context.Context, userID string) (*models.UserProgress, error) {
	progress, err := r.GetByUser(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fresh := &models.UserProgress{
		ID:           uuid.NewString(),
		UserID:       userID,
		CurrentLevel: 1,
	}

	// ON CONFLICT DO NOTHING plus re-read keeps two racing first accesses
	// from creating two rows: the loser simply observes the winner's insert.
	_, err = r.db.NewInsert().
		Model(fresh).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return r.GetByUser(ctx, userID)
}

func (r *progressRepository) UpdateTx(ctx context.Context, tx bun.IDB, progress *models.UserProgress) error {
	_, err := tx.NewUpdate().
		Model(progress).
		WherePK().
		Exec(ctx)
	return err
}
