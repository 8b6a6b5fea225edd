package traveler

import (
	"job-traveler/internal/storage"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Aggregate reduces the time-log entries of one operation. Entries dated before
// now-window are skipped. The latest operator comes from the latest entry that
// has an employee record, which need not be the latest entry overall.
func Aggregate(entries []storage.TimeEntry, now time.Time, window time.Duration) storage.TimeAggregate {
	var agg storage.TimeAggregate

	cutoff := now.Add(-window)

	var latest, staffed *storage.TimeEntry
	for i := range entries {
		e := &entries[i]
		if e.WorkDate.Before(cutoff) {
			continue
		}

		agg.TotalHours += e.RunHours
		agg.QtyProduced += e.RunQty

		if latest == nil || entryAfter(e, latest) {
			latest = e
		}
		if e.Employee != nil && (staffed == nil || entryAfter(e, staffed)) {
			staffed = e
		}
	}

	if latest == nil {
		return agg
	}

	// The latest entry carries the greatest work date.
	lastWork := latest.WorkDate
	days := daysBetween(lastWork, now)
	agg.LastWorkDate = &lastWork
	agg.DaysSinceLastWork = &days
	if staffed != nil {
		agg.LatestOperator = OperatorLabel(staffed.FirstName, staffed.LastName)
	}

	return agg
}

// entryAfter orders entries by work date, then last-updated, then entry id.
func entryAfter(a, b *storage.TimeEntry) bool {
	if !a.WorkDate.Equal(b.WorkDate) {
		return a.WorkDate.After(b.WorkDate)
	}

	au, bu := a.LastUpdated, b.LastUpdated
	switch {
	case au != nil && bu == nil:
		return true
	case au == nil && bu != nil:
		return false
	case au != nil && bu != nil && !au.Equal(*bu):
		return au.After(*bu)
	}

	return a.ID > b.ID
}

// daysBetween counts calendar-day boundaries from `from` to `to`. Each side is
// read on its own wall clock: a work date is a shop calendar date and is not
// shifted into the zone of `to`.
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(toDay.Sub(fromDay).Hours() / 24)
}

// OperatorLabel renders "John", "SMITH" as "John_S". Returns nil when either
// name is missing, as the employee join does for incomplete records.
func OperatorLabel(firstName, lastName *string) *string {
	if firstName == nil || lastName == nil {
		return nil
	}

	first := strings.TrimSpace(*firstName)
	if first == "" {
		return nil
	}

	r, size := utf8.DecodeRuneInString(first)
	label := string(unicode.ToUpper(r)) + strings.ToLower(first[size:]) + "_"

	if last := strings.TrimSpace(*lastName); last != "" {
		lr, _ := utf8.DecodeRuneInString(last)
		label += string(unicode.ToUpper(lr))
	}

	return &label
}
