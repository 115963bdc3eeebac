package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	dbmodels "github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/models"
)

// MaxActiveHabits caps concurrently active habits per user. The product is
// built around at most three micro-habits.
const MaxActiveHabits = 3

// HabitService owns the habit lifecycle: creation under the active-habit
// cap, owner-scoped updates, and soft deletion.
type HabitService struct {
	habits repositories.HabitRepository
}

func NewHabitService(habits repositories.HabitRepository) *HabitService {
	return &HabitService{habits: habits}
}

func (s *HabitService) Create(ctx context.Context, userID string, req models.HabitCreateRequest) (*dbmodels.Habit, error) {
	count, err := s.habits.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active habits: %w", err)
	}
	if count >= MaxActiveHabits {
		return nil, ErrHabitLimitExceeded
	}

	habit := &dbmodels.Habit{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		MinimumAction: req.MinimumAction,
		Emoji:         req.Emoji,
		IsActive:      true,
	}

	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	slog.Info("Habit created",
		slog.String("habit_id", habit.ID),
		slog.String("user_id", userID))

	return habit, nil
}

func (s *HabitService) ListActive(ctx context.Context, userID string) ([]*dbmodels.Habit, error) {
	return s.habits.GetActiveByUser(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, userID, habitID string, req models.HabitUpdateRequest) (*dbmodels.Habit, error) {
	habit, err := s.habits.GetByIDForUser(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.MinimumAction != nil {
		habit.MinimumAction = *req.MinimumAction
	}
	if req.Emoji != nil {
		habit.Emoji = req.Emoji
	}

	if err := s.habits.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Delete soft-deletes: the row stays, is_active flips off, and the slot
// frees up against the cap.
func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	if err := s.habits.Deactivate(ctx, habitID, userID); err != nil {
		return err
	}

	slog.Info("Habit deactivated",
		slog.String("habit_id", habitID),
		slog.String("user_id", userID))

	return nil
}
