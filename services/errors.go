package services

import "errors"

var (
	// ErrAlreadyCheckedIn is returned for a second check-in on the same
	// UTC calendar day, whether caught by the pre-check or by the storage
	// uniqueness constraint under concurrency.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrHabitLimitExceeded is returned when creating a habit would push a
	// user past three concurrently active habits.
	ErrHabitLimitExceeded = errors.New("maximum of 3 active habits allowed")
)
