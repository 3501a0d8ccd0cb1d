package domain

import "errors"

// Validation errors shared by the domain models. Services wrap or map
// these to transport-level responses.
var (
	ErrInvalidActivityType = errors.New("activity type must be running, cycling or weightlifting")
	ErrInvalidGoalType     = errors.New("goal type must be distance, duration or calories")
	ErrInvalidTimePeriod   = errors.New("time period must be week, month or all")
	ErrInvalidDuration     = errors.New("duration must be a positive number of minutes")
	ErrInvalidCalories     = errors.New("calories burned must be a positive number")
	ErrInvalidDistance     = errors.New("distance cannot be negative")
	ErrDistanceRequired    = errors.New("distance is required for running and cycling activities")
	ErrInvalidTarget       = errors.New("goal target must be a positive number")
)
