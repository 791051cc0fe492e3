package grid

import "time"

// KeyLayout is the canonical Y-M-D form used as the label date key.
const KeyLayout = "2006-01-02"

// Day is one cell of the displayed month grid.
type Day struct {
	Date       time.Time
	Key        string // Date formatted as KeyLayout
	OtherMonth bool   // belongs to a neighbouring month, shown for continuity
	Today      bool
}

// Days returns the full grid for (year, month): whole weeks starting on
// Sunday, from the Sunday on/before the 1st through the Saturday on/after
// the month's last day. Always a multiple of 7 days (35 or 42).
func Days(year int, month time.Month, today time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	todayKey := today.Format(KeyLayout)

	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(KeyLayout)
		days = append(days, Day{
			Date:       d,
			Key:        key,
			OtherMonth: d.Month() != month,
			Today:      key == todayKey,
		})
	}
	return days
}

// MonthOf strips t down to the (year, month) pair that Days consumes.
func MonthOf(t time.Time) (int, time.Month) {
	return t.Year(), t.Month()
}

// AddMonths steps (year, month) by delta months, normalizing across year
// boundaries. delta may be negative.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// DayKey formats t as a label date key.
func DayKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a label date key back into a UTC midnight time.
func ParseKey(key string) (time.Time, error) {
	return time.Parse(KeyLayout, key)
}
