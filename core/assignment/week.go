package assignment

import "time"

// ISOWeek returns the ISO-8601 week of t: weeks start on Monday and week 1
// is the week holding the year's first Thursday.
func ISOWeek(t time.Time) int {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	thursday := t.AddDate(0, 0, 4-wd)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	days := int(thursday.Sub(yearStart).Hours() / 24)
	return (days + 1 + 6) / 7
}
