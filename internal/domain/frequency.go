package domain

import (
	"fmt"
	"time"
)

// Frequency is the cadence at which a task template produces new tasks.
type Frequency string

// Supported template frequencies.
const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// Frequencies lists all supported frequencies, in ascending cadence order.
// Useful for populating choice lists in the API layer.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyYearly,
}

// ParseFrequency converts a string into a Frequency.
// Returns ErrInvalidFrequency if the string is not a supported cadence.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyYearly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// Valid reports whether the frequency is one of the supported cadences.
func (f Frequency) Valid() bool {
	_, err := ParseFrequency(string(f))
	return err == nil
}

// Offset returns the fixed duration between two generations at this cadence.
//
// The day counts are literal: monthly is always 30 days and yearly always 365,
// never calendar-aware month or year arithmetic. The same offset is used both
// to decide eligibility (time since last generation) and to compute the due
// date of the next generated task.
func (f Frequency) Offset() time.Duration {
	const day = 24 * time.Hour

	switch f {
	case FrequencyDaily:
		return 1 * day
	case FrequencyWeekly:
		return 7 * day
	case FrequencyBiweekly:
		return 14 * day
	case FrequencyMonthly:
		return 30 * day
	case FrequencyYearly:
		return 365 * day
	default:
		// Callers validate the frequency before using the offset.
		return 0
	}
}

// String implements fmt.Stringer.
func (f Frequency) String() string {
	return string(f)
}
