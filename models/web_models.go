package models

import (
	"time"

	dbmodels "github.com/tom73737/non-zero-days-app-jkqfrv/database/models"
)

// UserSession is the verified identity attached to a request. The auth
// provider is the source of truth; the backend only trusts the UserID
// after signature verification.
type UserSession struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HabitDTO is the wire shape of a habit. The owner ID stays server-side.
type HabitDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MinimumAction string  `json:"minimumAction"`
	Emoji         *string `json:"emoji"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
}

func NewHabitDTO(habit *dbmodels.Habit) HabitDTO {
	return HabitDTO{
		ID:            habit.ID,
		Name:          habit.Name,
		MinimumAction: habit.MinimumAction,
		Emoji:         habit.Emoji,
		IsActive:      habit.IsActive,
		CreatedAt:     habit.CreatedAt.UTC().Format(time.RFC3339),
	}
}

const (
	maxHabitNameLen  = 100
	maxMinimumActLen = 200
)

// HabitCreateRequest is the body of POST /api/habits.
type HabitCreateRequest struct {
	Name          string  `json:"name"`
	MinimumAction string  `json:"minimumAction"`
	Emoji         *string `json:"emoji"`
}

// Validate returns field-level problems, empty when the request is valid.
func (r HabitCreateRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Name == "" {
		details["name"] = "name is required"
	} else if len(r.Name) > maxHabitNameLen {
		details["name"] = "name is too long"
	}
	if r.MinimumAction == "" {
		details["minimumAction"] = "minimumAction is required"
	} else if len(r.MinimumAction) > maxMinimumActLen {
		details["minimumAction"] = "minimumAction is too long"
	}
	return details
}

// HabitUpdateRequest is the body of PATCH /api/habits/:id. Nil fields are
// left unchanged.
type HabitUpdateRequest struct {
	Name          *string `json:"name"`
	MinimumAction *string `json:"minimumAction"`
	Emoji         *string `json:"emoji"`
}

func (r HabitUpdateRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Name != nil {
		if *r.Name == "" {
			details["name"] = "name must not be empty"
		} else if len(*r.Name) > maxHabitNameLen {
			details["name"] = "name is too long"
		}
	}
	if r.MinimumAction != nil {
		if *r.MinimumAction == "" {
			details["minimumAction"] = "minimumAction must not be empty"
		} else if len(*r.MinimumAction) > maxMinimumActLen {
			details["minimumAction"] = "minimumAction is too long"
		}
	}
	return details
}
