// file: internals/helpers/civil.go
//
// Civil-day arithmetic in the configured zone (+07:00 by default).
// Persisted timestamps stay UTC; all day/month boundaries are computed here.
package helper

import (
	"time"

	"nitihub_backend/internals/configs"
)

func Location() *time.Location {
	if configs.AppLocation != nil {
		return configs.AppLocation
	}
	return time.FixedZone("ICT", 7*3600)
}

func NowLocal() time.Time {
	return time.Now().In(Location())
}

// Today truncates to the civil day in the app zone.
func Today() time.Time {
	return StartOfDay(NowLocal())
}

func StartOfDay(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

func StartOfMonth(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Location())
}

func StartOfNextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

func StartOfPrevMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, -1, 0)
}

// IsOverdue: strictly after the deadline's civil day.
func IsOverdue(expireDate time.Time, today time.Time) bool {
	return StartOfDay(today).After(StartOfDay(expireDate))
}

// FormatThaiDate renders a deadline for notification text (DD/MM/YYYY, พ.ศ.).
func FormatThaiDate(t time.Time) string {
	t = t.In(Location())
	return t.Format("02/01/") + formatBuddhistYear(t.Year())
}

func formatBuddhistYear(gregorian int) string {
	y := gregorian + 543
	digits := [4]byte{}
	for i := 3; i >= 0; i-- {
		digits[i] = byte('0' + y%10)
		y /= 10
	}
	return string(digits[:])
}
