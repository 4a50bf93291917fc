package model

import (
	"fmt"
	"math"
	"time"
)

const (
	// urgentToggleHours and notUrgentToggleHours are the hours suggested to the
	// user when the urgency of a task is switched on or off while editing.
	urgentToggleHours    = 6
	notUrgentToggleHours = 48
)

// maxHours is the largest amount of hours representable as a time.Duration.
var maxHours = float64(math.MaxInt64) / float64(time.Hour)

// ValidateHours checks hours are a finite non-negative number.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return fmt.Errorf("hours must be a finite non-negative number, got %v: %w", hours, ErrNotValid)
	}
	return nil
}

// NormalizeHours moves hours onto the requested urgency axis: urgent hours
// above the threshold are clamped down to it, non urgent hours at or below the
// threshold are bumped one hour past it.
func NormalizeHours(hours float64, urgent bool) float64 {
	if urgent && hours > UrgencyThresholdHours {
		return UrgencyThresholdHours
	}
	if !urgent && hours <= UrgencyThresholdHours {
		return UrgencyThresholdHours + 1
	}
	return hours
}

// ClampHours clamps hours onto the urgency axis of a transfer destination.
func ClampHours(hours float64, urgent bool) float64 {
	if urgent {
		return math.Min(hours, UrgencyThresholdHours)
	}
	return math.Max(hours, UrgencyThresholdHours+1)
}

// FallbackHours are the hours used when a due time does not match the urgency of a destination.
func FallbackHours(urgent bool) float64 {
	if urgent {
		return UrgencyThresholdHours
	}
	return UrgencyThresholdHours + 1
}

// UrgentToggleHours returns the hours an edit form suggests after the urgency
// flag changes, keeping the current hours when they already match.
func UrgentToggleHours(hours float64, urgent bool) float64 {
	if urgent && hours > UrgencyThresholdHours {
		return urgentToggleHours
	}
	if !urgent && hours <= UrgencyThresholdHours {
		return notUrgentToggleHours
	}
	return hours
}

// HoursToDuration converts hours to a duration, negative or invalid hours are zero.
func HoursToDuration(hours float64) time.Duration {
	if math.IsNaN(hours) || hours <= 0 {
		return 0
	}
	if hours >= maxHours {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(hours * float64(time.Hour))
}

// RemainingHours returns the whole hours left until the due time, rounded up.
func RemainingHours(dueAt, now time.Time) int {
	left := dueAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours()))
}

// EditHoursDefault returns the hours an edit form starts with for a task due
// at dueAt: the remaining whole hours, or a full urgency window when nothing remains.
func EditHoursDefault(dueAt, now time.Time) float64 {
	if h := RemainingHours(dueAt, now); h > 0 {
		return float64(h)
	}
	return UrgencyThresholdHours
}

// TransferHoursDefault returns the hours suggested when a transfer asks for a
// new due time, never less than one hour.
func TransferHoursDefault(dueAt, now time.Time) float64 {
	return math.Max(1, float64(RemainingHours(dueAt, now)))
}
