package playbook

import "time"

// DueDate converts a relative day offset into a concrete calendar date
// anchored at the given instant. Returns nil when offsetDays is zero or
// negative: an absent offset means "no due date", never a backdated one.
// The result is truncated to a UTC calendar date so every date produced from
// one anchor is independent of the anchor's time-of-day.
func DueDate(anchor time.Time, offsetDays int) *time.Time {
	if offsetDays <= 0 {
		return nil
	}
	d := anchor.UTC().AddDate(0, 0, offsetDays)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
