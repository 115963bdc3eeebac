package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
)

// In-memory repositories backing the "memory" storage driver. They enforce
// the same invariants as the Postgres schema (unique check-in per day,
// one progress row per user) so local development and tests exercise the
// same code paths as production.

type MemoryHabitRepository struct {
	mu     sync.RWMutex
	habits map[string]*models.Habit
}

func NewMemoryHabitRepository() *MemoryHabitRepository {
	return &MemoryHabitRepository{habits: make(map[string]*models.Habit)}
}

func (r *MemoryHabitRepository) Create(_ context.Context, habit *models.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now().UTC()
	}
	stored := *habit
	r.habits[habit.ID] = &stored
	return nil
}

func (r *MemoryHabitRepository) GetByIDForUser(_ context.Context, id, userID string) (*models.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.habits[id]
	if !ok || habit.UserID != userID {
		return nil, ErrNotFound
	}
	found := *habit
	return &found, nil
}

func (r *MemoryHabitRepository) GetActiveByUser(_ context.Context, userID string) ([]*models.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*models.Habit
	for _, habit := range r.habits {
		if habit.UserID == userID && habit.IsActive {
			found := *habit
			habits = append(habits, &found)
		}
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (r *MemoryHabitRepository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	habits, err := r.GetActiveByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(habits), nil
}

func (r *MemoryHabitRepository) Update(_ context.Context, habit *models.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.habits[habit.ID]
	if !ok || existing.UserID != habit.UserID {
		return ErrNotFound
	}
	existing.Name = habit.Name
	existing.MinimumAction = habit.MinimumAction
	existing.Emoji = habit.Emoji
	return nil
}

func (r *MemoryHabitRepository) Deactivate(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.habits[id]
	if !ok || habit.UserID != userID {
		return ErrNotFound
	}
	habit.IsActive = false
	return nil
}

type checkinKey struct {
	userID string
	day    time.Time
}

type MemoryCheckinRepository struct {
	mu       sync.RWMutex
	checkins map[checkinKey]*models.DailyCheckin
}

func NewMemoryCheckinRepository() *MemoryCheckinRepository {
	return &MemoryCheckinRepository{checkins: make(map[checkinKey]*models.DailyCheckin)}
}

func (r *MemoryCheckinRepository) GetByUserAndDate(_ context.Context, userID string, day time.Time) (*models.DailyCheckin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkin, ok := r.checkins[checkinKey{userID: userID, day: day}]
	if !ok {
		return nil, ErrNotFound
	}
	found := *checkin
	return &found, nil
}

func (r *MemoryCheckinRepository) InsertTx(_ context.Context, _ bun.IDB, checkin *models.DailyCheckin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := checkinKey{userID: checkin.UserID, day: checkin.CheckinDate}
	if _, exists := r.checkins[key]; exists {
		return database.ErrUniqueViolation
	}
	stored := *checkin
	r.checkins[key] = &stored
	return nil
}

func (r *MemoryCheckinRepository) GetSince(_ context.Context, userID string, since time.Time) ([]*models.DailyCheckin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var checkins []*models.DailyCheckin
	for _, checkin := range r.checkins {
		if checkin.UserID == userID && !checkin.CheckinDate.Before(since) {
			found := *checkin
			checkins = append(checkins, &found)
		}
	}
	sort.Slice(checkins, func(i, j int) bool {
		return checkins[i].CheckinDate.After(checkins[j].CheckinDate)
	})
	return checkins, nil
}

type MemoryProgressRepository struct {
	mu       sync.Mutex
	progress map[string]*models.UserProgress
}

func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{progress: make(map[string]*models.UserProgress)}
}

func (r *MemoryProgressRepository) GetByUser(_ context.Context, userID string) (*models.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	progress, ok := r.progress[userID]
	if !ok {
		return nil, ErrNotFound
	}
	found := *progress
	return &found, nil
}

func (r *MemoryProgressRepository) GetOrCreate(_ context.Context, userID string) (*models.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if progress, ok := r.progress[userID]; ok {
		found := *progress
		return &found, nil
	}

	fresh := &models.UserProgress{
		ID:           uuid.NewString(),
		UserID:       userID,
		CurrentLevel: 1,
	}
	r.progress[userID] = fresh

	found := *fresh
	return &found, nil
}

func (r *MemoryProgressRepository) UpdateTx(_ context.Context, _ bun.IDB, progress *models.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *progress
	r.progress[progress.UserID] = &stored
	return nil
}
