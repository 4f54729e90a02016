// Package dateutil holds the UTC day arithmetic shared by the replayer
// (day-boundary checkpoint decision) and the archiver (day windows and
// artifact naming). Dates are u32 YYYYMMDD everywhere.
package dateutil

import (
	"fmt"
	"time"
)

const daySeconds = 24 * 60 * 60

// TruncateToDay truncates a unix timestamp to 00:00:00 UTC of its day.
func TruncateToDay(unixtime int64) int64 {
	rem := unixtime % daySeconds
	if rem < 0 {
		rem += daySeconds
	}
	return unixtime - rem
}

// IsNextDay reports whether next is exactly one day after current.
// Both arguments must already be day-truncated.
func IsNextDay(current, next int64) bool {
	return next == current+daySeconds
}

// UnixToYYYYMMDD converts a unix timestamp to its UTC calendar date.
func UnixToYYYYMMDD(unixtime int64) uint32 {
	t := time.Unix(unixtime, 0).UTC()
	return uint32(t.Year())*10000 + uint32(t.Month())*100 + uint32(t.Day())
}

// YYYYMMDDToUnix returns the unix timestamp of 00:00:00 UTC on the date.
func YYYYMMDDToUnix(yyyymmdd uint32) int64 {
	y, m, d := split(yyyymmdd)
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// DayWindow returns the inclusive [start, end] unix timestamp range of
// the date: 00:00:00 through 23:59:59 UTC.
func DayWindow(yyyymmdd uint32) (int64, int64) {
	start := YYYYMMDDToUnix(yyyymmdd)
	return start, start + daySeconds - 1
}

// NextYYYYMMDD returns the calendar day after the date.
func NextYYYYMMDD(yyyymmdd uint32) uint32 {
	y, m, d := split(yyyymmdd)
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return uint32(t.Year())*10000 + uint32(t.Month())*100 + uint32(t.Day())
}

// PrevYYYYMMDD returns the calendar day before the date.
func PrevYYYYMMDD(yyyymmdd uint32) uint32 {
	y, m, d := split(yyyymmdd)
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return uint32(t.Year())*10000 + uint32(t.Month())*100 + uint32(t.Day())
}

// SplitYYYYMMDD formats the date as "YYYY" and "MMDD" path segments for
// remote artifact paths.
func SplitYYYYMMDD(yyyymmdd uint32) (yyyy, mmdd string) {
	return fmt.Sprintf("%04d", yyyymmdd/10000), fmt.Sprintf("%04d", yyyymmdd%10000)
}

func split(yyyymmdd uint32) (int, time.Month, int) {
	return int(yyyymmdd / 10000), time.Month(yyyymmdd % 10000 / 100), int(yyyymmdd % 100)
}
