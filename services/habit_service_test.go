package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/models"
)

func newHabitService() *HabitService {
	return NewHabitService(repositories.NewMemoryHabitRepository())
}

func createReq(name string) models.HabitCreateRequest {
	return models.HabitCreateRequest{
		Name:          name,
		MinimumAction: "one tiny step",
	}
}

func Test_HabitService_CreateAndList(t *testing.T) {
	svc := newHabitService()
	ctx := context.Background()

	habit, err := svc.Create(ctx, "user-1", createReq("Read"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if habit.ID == "" {
		t.Error("Create() returned habit without ID")
	}
	if !habit.IsActive {
		t.Error("Create() returned inactive habit")
	}

	habits, err := svc.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("ListActive() = %v, want one habit named Read", habits)
	}
}

func Test_HabitService_FourthHabitRejected(t *testing.T) {
	svc := newHabitService()
	ctx := context.Background()

	for _, name := range []string{"Read", "Walk", "Water"} {
		if _, err := svc.Create(ctx, "user-1", createReq(name)); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	_, err := svc.Create(ctx, "user-1", createReq("Sleep"))
	if !errors.Is(err, ErrHabitLimitExceeded) {
		t.Fatalf("fourth Create() error = %v, want ErrHabitLimitExceeded", err)
	}

	// The cap is per user, not global.
	if _, err := svc.Create(ctx, "user-2", createReq("Read")); err != nil {
		t.Errorf("Create() for another user error = %v", err)
	}
}

func Test_HabitService_DeleteFreesSlot(t *testing.T) {
	svc := newHabitService()
	ctx := context.Background()

	var habitIDs []string
	for _, name := range []string{"Read", "Walk", "Water"} {
		habit, err := svc.Create(ctx, "user-1", createReq(name))
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		habitIDs = append(habitIDs, habit.ID)
	}

	if err := svc.Delete(ctx, "user-1", habitIDs[0]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	habits, err := svc.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("ListActive() returned %d habits after delete, want 2", len(habits))
	}

	if _, err := svc.Create(ctx, "user-1", createReq("Sleep")); err != nil {
		t.Errorf("Create() after freeing a slot error = %v", err)
	}
}

func Test_HabitService_Update(t *testing.T) {
	svc := newHabitService()
	ctx := context.Background()

	habit, err := svc.Create(ctx, "user-1", createReq("Read"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newName := "Read fiction"
	updated, err := svc.Update(ctx, "user-1", habit.ID, models.HabitUpdateRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}
	if updated.MinimumAction != habit.MinimumAction {
		t.Errorf("MinimumAction changed on partial update: %q", updated.MinimumAction)
	}
}

func Test_HabitService_OtherUsersHabitIsInvisible(t *testing.T) {
	svc := newHabitService()
	ctx := context.Background()

	habit, err := svc.Create(ctx, "user-1", createReq("Read"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	name := "Hijacked"
	_, err = svc.Update(ctx, "user-2", habit.ID, models.HabitUpdateRequest{Name: &name})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Update() as another user error = %v, want ErrNotFound", err)
	}

	err = svc.Delete(ctx, "user-2", habit.ID)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Delete() as another user error = %v, want ErrNotFound", err)
	}

	// Still intact for the owner.
	habits, err := svc.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("owner's habit was affected: %v", habits)
	}
}
