package pattern

import (
	"path/filepath"
	"strings"
	"time"
)

/**************************************************************************************************
** SegmentMatch is the extraction result for one path segment.
**************************************************************************************************/
type SegmentMatch struct {
	Index   int         // Position of the segment in the path, 0 = root side
	Segment string      // Raw path segment
	Rule    string      // Raw template segment it was aligned with ("" when unaligned)
	Groups  []string    // Groups[0] is the whole segment, Groups[n] the n-th capture
	Date    PartialDate // Fields parsed from the segment
	Dated   bool        // Whether Date holds a valid contribution
}

/**************************************************************************************************
** Extraction is the result of aligning one path against the source template. Matches holds
** the aligned suffix of the path, in path order.
**************************************************************************************************/
type Extraction struct {
	Path    []string
	Matches []SegmentMatch
}

/**************************************************************************************************
** At returns the segment k positions from the leaf (0 = file name). Segments outside the
** aligned suffix only expose their raw text as group 0. Beyond the root, the zero match with
** Index -1 is returned.
**
** @param k - Distance from the leaf
** @return SegmentMatch - The match at that depth
**************************************************************************************************/
func (e Extraction) At(k int) SegmentMatch {
	if k < 0 || k >= len(e.Path) {
		return SegmentMatch{Index: -1}
	}
	if k < len(e.Matches) {
		return e.Matches[len(e.Matches)-1-k]
	}
	index := len(e.Path) - 1 - k
	return SegmentMatch{Index: index, Segment: e.Path[index], Groups: []string{e.Path[index]}}
}

// SplitPath splits a filesystem path into its segments using "/" on every platform. An
// absolute path starts with an empty segment.
func SplitPath(path string) []string {
	return strings.Split(filepath.ToSlash(path), "/")
}

/**************************************************************************************************
** Align walks the path and the source template from the end at the same pace and extracts
** every aligned segment. The walk stops when either list runs out: a deeper path leaves its
** leading segments unaligned, a shallower path leaves the leading template entries unused.
**
** @param path - Path segments, root first
** @param template - Compiled source template
** @param defaultDate - Base date used to validate partial dates (unset fields come from it)
** @return Extraction - Aligned matches in path order
**************************************************************************************************/
func Align(path []string, template *SourceTemplate, defaultDate time.Time) Extraction {
	n := len(path)
	if len(template.Segments) < n {
		n = len(template.Segments)
	}

	e := Extraction{Path: path, Matches: make([]SegmentMatch, n)}
	for k := 0; k < n; k++ {
		index := len(path) - 1 - k
		rule := template.Segments[len(template.Segments)-1-k]
		match := rule.Extract(path[index], defaultDate)
		match.Index = index
		e.Matches[n-1-k] = match
	}
	return e
}

/**************************************************************************************************
** Extract applies the segment rule to one path segment. A segment the rule does not match
** yields only group 0 and no date; it is never an error.
**
** @param segment - Raw path segment
** @param defaultDate - Base date used to validate the parsed fields
** @return SegmentMatch - Groups and partial date (Index is set by the caller)
**************************************************************************************************/
func (s SourceSegment) Extract(segment string, defaultDate time.Time) SegmentMatch {
	match := SegmentMatch{Segment: segment, Rule: s.Raw, Groups: []string{segment}}

	var date PartialDate
	ok := false
	switch s.kind {
	case kindPlain:
		date, ok = s.format.Parse(segment)

	case kindExplicit:
		text := segment
		if m := s.regex.FindStringSubmatch(segment); m != nil {
			match.Groups = m
			text = s.subst.expand(m)
		}
		if s.format != nil {
			date, ok = s.format.Parse(text)
		}

	case kindInline:
		m := s.regex.FindStringSubmatch(segment)
		if m == nil {
			break
		}
		for _, g := range s.groups {
			match.Groups = append(match.Groups, m[g])
		}
		ok = true
		for _, part := range s.parts {
			parsed, good := part.format.Parse(m[part.group])
			if !good {
				ok = false
				break
			}
			date = date.Overlay(parsed)
		}
	}

	if !ok || date.IsZero() {
		return match
	}
	if _, valid := date.Apply(defaultDate); !valid {
		return match
	}
	match.Date = date
	match.Dated = true
	return match
}
