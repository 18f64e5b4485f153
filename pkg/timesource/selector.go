/**************************************************************************************************
** Package timesource decides which timestamp a file is organized under. It folds the partial
** dates extracted from a path into one path date and picks, in the configured priority order,
** the first valid candidate among the embedded metadata, the modify time and the path date.
**************************************************************************************************/
package timesource

import (
	"time"

	"github.com/majorfi/datetool/pkg/utils"
)

/**************************************************************************************************
** Candidate is one possible timestamp for a file. A candidate is valid only when its source
** produced a value and that value is not the zero time.
**************************************************************************************************/
type Candidate struct {
	Time  time.Time
	Valid bool
}

// NewCandidate builds a candidate from a (value, ok) pair.
func NewCandidate(t time.Time, ok bool) Candidate {
	return Candidate{Time: t, Valid: ok && !t.IsZero()}
}

// Candidates holds the candidate for each time source of one file.
type Candidates map[utils.TTimeSource]Candidate

/**************************************************************************************************
** Select returns the first candidate in priority order that is present and valid.
**
** @param priority - Sources in decreasing priority
** @param candidates - Candidate for each source; missing sources are invalid
** @return time.Time - The chosen timestamp
** @return utils.TTimeSource - The source that won
** @return bool - False when no candidate is valid
**************************************************************************************************/
func Select(priority []utils.TTimeSource, candidates Candidates) (time.Time, utils.TTimeSource, bool) {
	for _, source := range priority {
		if c, ok := candidates[source]; ok && c.Valid {
			return c.Time, source, true
		}
	}
	return time.Time{}, "", false
}
