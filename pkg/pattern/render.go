package pattern

import (
	"path/filepath"
	"strings"
	"time"
)

/**************************************************************************************************
** Render walks the target template from the end, symmetric to Align, and renders one output
** segment per template entry. The entry k positions from the leaf uses the groups captured k
** positions from the leaf of the source path.
**
** @param date - Chosen date, rendered into the format text
** @param e - Extraction of the source path
** @return []string - Rendered segments in path order; entries may be empty
**************************************************************************************************/
func (t *TargetTemplate) Render(date time.Time, e Extraction) []string {
	out := make([]string, len(t.Segments))
	for k := 0; k < len(t.Segments); k++ {
		i := len(t.Segments) - 1 - k
		out[i] = t.Segments[i].render(date, e.At(k))
	}
	return out
}

/**************************************************************************************************
** Path renders the destination under root. Empty rendered segments are dropped by the join.
**
** @param root - Output root directory
** @param date - Chosen date
** @param e - Extraction of the source path
** @return string - Destination path
**************************************************************************************************/
func (t *TargetTemplate) Path(root string, date time.Time, e Extraction) string {
	return filepath.Join(append([]string{root}, t.Render(date, e)...)...)
}

func (s TargetSegment) render(date time.Time, match SegmentMatch) string {
	switch s.kind {
	case targetPassthrough:
		return match.Segment
	case targetLiteral:
		return s.Raw
	}

	var b strings.Builder
	for _, p := range s.parts {
		if p.format != nil {
			b.WriteString(p.format.Render(date))
			continue
		}
		b.WriteString(p.placeholder.expand(match.Groups))
	}
	return b.String()
}
