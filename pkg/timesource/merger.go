package timesource

import (
	"time"

	"github.com/majorfi/datetool/pkg/pattern"
)

/**************************************************************************************************
** MergePath folds the dates of the aligned segments into one path date. Segments are folded
** deepest first and each overwrites only the fields its format mentions, so a shallower
** segment wins on a field both set.
**
** @param matches - Aligned segments in path order
** @param defaultDate - Value of every field no segment set
** @return time.Time - The path date
** @return bool - False when no field was set or the merged date is not a valid calendar date
**************************************************************************************************/
func MergePath(matches []pattern.SegmentMatch, defaultDate time.Time) (time.Time, bool) {
	var merged pattern.PartialDate
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Dated {
			merged = merged.Overlay(matches[i].Date)
		}
	}
	if merged.IsZero() {
		return time.Time{}, false
	}
	return merged.Apply(defaultDate)
}

/**************************************************************************************************
** InheritTimeOfDay replaces the time of day of a date-only path date. It fires only when the
** hour, minute, second and millisecond are all exactly zero. The clock is taken from the
** metadata candidate when valid, else from the modify time, at millisecond precision and read
** in the path date's location.
**
** @param date - The merged path date
** @param metadata - Metadata candidate
** @param modifyTime - Modify time of the file
** @return time.Time - The date with its time of day filled in
**************************************************************************************************/
func InheritTimeOfDay(date time.Time, metadata Candidate, modifyTime time.Time) time.Time {
	if date.Hour() != 0 || date.Minute() != 0 || date.Second() != 0 || date.Nanosecond()/int(time.Millisecond) != 0 {
		return date
	}

	donor := modifyTime
	if metadata.Valid {
		donor = metadata.Time
	}
	if donor.IsZero() {
		return date
	}

	donor = donor.In(date.Location())
	ms := donor.Nanosecond() / int(time.Millisecond)
	return time.Date(date.Year(), date.Month(), date.Day(),
		donor.Hour(), donor.Minute(), donor.Second(), ms*int(time.Millisecond), date.Location())
}

/**************************************************************************************************
** PathCandidate merges the extraction of one path and applies time-of-day inheritance.
**
** @param e - Extraction of the source path
** @param defaultDate - Base date for unset fields
** @param metadata - Metadata candidate, donor of the time of day
** @param modifyTime - Modify time, donor when metadata is invalid
** @return Candidate - The path candidate, invalid when the path yields no date
**************************************************************************************************/
func PathCandidate(e pattern.Extraction, defaultDate time.Time, metadata Candidate, modifyTime time.Time) Candidate {
	date, ok := MergePath(e.Matches, defaultDate)
	if !ok {
		return Candidate{}
	}
	return NewCandidate(InheritTimeOfDay(date, metadata, modifyTime), true)
}
