package quota

import "time"

// MonthStart returns the first instant of the calendar month containing now,
// in the server's local zone. Every usage count in the platform measures from
// this boundary so the counters and the gate can never disagree on the window.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// DayStart returns local midnight of the day containing now.
func DayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
