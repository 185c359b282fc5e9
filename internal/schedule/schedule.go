// Package schedule derives subscription delivery schedules from a cadence
// and a start date.
package schedule

import (
	"time"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/model"
)

const (
	weeklyDeliveries = 4
	weeklySpanDays   = 28
)

// Schedule is the derived delivery plan for one subscription.
type Schedule struct {
	EndDate       time.Time
	DeliveryDates []time.Time
}

// Derive computes the end date and delivery dates for a subscription.
// Weekly plans run 28 days with four deliveries a week apart starting at the
// start date. Monthly plans run one calendar month with a single delivery on
// the start date; the end date clamps to the last day of a shorter target
// month (Jan 31 becomes Feb 28 or 29).
//
// All dates are normalized to UTC midnight so month arithmetic never drifts
// across a day boundary.
func Derive(subType model.SubscriptionType, start time.Time) (Schedule, error) {
	if start.IsZero() {
		return Schedule{}, apperror.Validation("startDate is required")
	}
	start = civilDate(start)

	switch subType {
	case model.SubscriptionTypeWeekly:
		dates := make([]time.Time, 0, weeklyDeliveries)
		for i := 0; i < weeklyDeliveries; i++ {
			dates = append(dates, start.AddDate(0, 0, 7*i))
		}
		return Schedule{
			EndDate:       start.AddDate(0, 0, weeklySpanDays),
			DeliveryDates: dates,
		}, nil
	case model.SubscriptionTypeMonthly:
		return Schedule{
			EndDate:       addMonthClamped(start),
			DeliveryDates: []time.Time{start},
		}, nil
	}
	return Schedule{}, apperror.Validation("unknown subscription type %q", string(subType))
}

// ParseDate parses a civil date in YYYY-MM-DD form at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, apperror.Validation("startDate is required")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// civilDate keeps the wall-clock date of t and pins it to UTC midnight.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	// day 0 of month m+2 is the last day of month m+1
	last := time.Date(y, m+2, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		d = last
	}
	return time.Date(y, m+1, d, 0, 0, 0, 0, time.UTC)
}
