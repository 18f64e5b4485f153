package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"", "photos", "20120804", "IMG_001.jpg"}, SplitPath("/photos/20120804/IMG_001.jpg"))
	assert.Equal(t, []string{"IMG_001.jpg"}, SplitPath("IMG_001.jpg"))
}

func TestAlignBracketTemplate(t *testing.T) {
	template := CompileSource("yyyyMMdd/[.*]")
	e := Align(SplitPath("/photos/20120804/IMG_001.jpg"), template, defaultDate)

	require.Len(t, e.Matches, 2, "only the aligned suffix is extracted")

	dir := e.Matches[0]
	assert.Equal(t, 2, dir.Index)
	assert.Equal(t, "20120804", dir.Segment)
	assert.True(t, dir.Dated)
	assert.Equal(t, "year|month|day", dir.Date.Fields.String())

	file := e.Matches[1]
	assert.Equal(t, 3, file.Index)
	assert.False(t, file.Dated, "a bracket-only segment has no date")
	assert.Equal(t, []string{"IMG_001.jpg", "IMG_001.jpg"}, file.Groups)
}

func TestAlignExplicitTemplate(t *testing.T) {
	template := CompileSource(`<([0-9_]+).*>$1=yyyy_MM_dd/<(?:[A-Za-z]+[_-])?([0-9]+)[_-]([0-9]+)(\..*)>$1_$2=yyyyMMdd_HHmmss`)
	e := Align(SplitPath("/import/2012_08_04 trip/IMG_20120804_131415.jpg"), template, defaultDate)

	require.Len(t, e.Matches, 2)
	assert.True(t, e.Matches[0].Dated)
	assert.Equal(t, []string{"2012_08_04 trip", "2012_08_04"}, e.Matches[0].Groups)

	leaf := e.Matches[1]
	require.True(t, leaf.Dated)
	assert.Equal(t, []string{"IMG_20120804_131415.jpg", "20120804", "131415", ".jpg"}, leaf.Groups)
	second, _ := leaf.Date.Get(Second)
	assert.Equal(t, 15, second)
}

func TestAlignExplicitTemplateWithoutMatchParsesTheRawSegment(t *testing.T) {
	template := CompileSource(`<x([0-9]+)>$1=yyyyMMdd`)

	matched := Align([]string{"20120804"}, template, defaultDate)
	assert.True(t, matched.Matches[0].Dated, "identity substitution when the regex does not match")
	assert.Equal(t, []string{"20120804"}, matched.Matches[0].Groups)

	rewritten := Align([]string{"x20120804"}, template, defaultDate)
	assert.True(t, rewritten.Matches[0].Dated)
	assert.Equal(t, []string{"x20120804", "20120804"}, rewritten.Matches[0].Groups)
}

func TestAlignInlineTemplateWithMixedParts(t *testing.T) {
	template := CompileSource(`[(?:[A-Za-z]+[_-])?]yyyyMMdd[[_-]]HHmmss[\..*]`)
	e := Align([]string{"VID-20190102-030405.mp4"}, template, defaultDate)

	match := e.Matches[0]
	require.True(t, match.Dated)
	assert.Equal(t, []string{"VID-20190102-030405.mp4", "VID-", "-", ".mp4"}, match.Groups)

	got, ok := match.Date.Apply(defaultDate)
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, time.January, 2, 3, 4, 5, 0, time.UTC), got)
}

func TestAlignInlineCaptureGroupsWithInnerGroups(t *testing.T) {
	template := CompileSource(`[(a|b)x]yyyy[.*]`)
	e := Align([]string{"bx2015rest"}, template, defaultDate)

	match := e.Matches[0]
	require.True(t, match.Dated)
	assert.Equal(t, []string{"bx2015rest", "bx", "rest"}, match.Groups, "inner groups do not shift bracket numbering")
}

func TestAlignShallowPath(t *testing.T) {
	template := CompileSource("yyyy/MM/dd/[.*]")
	e := Align([]string{"05", "IMG.jpg"}, template, defaultDate)

	require.Len(t, e.Matches, 2, "leading template entries are never applied")
	assert.Equal(t, "dd", e.Matches[0].Rule)
	assert.True(t, e.Matches[0].Dated)
}

func TestAlignUnmatchedSegmentsDegradeQuietly(t *testing.T) {
	template := CompileSource("yyyyMMdd/yyyy[.*]")
	e := Align(SplitPath("Holiday/notes.txt"), template, defaultDate)

	for _, match := range e.Matches {
		assert.False(t, match.Dated)
		assert.Equal(t, []string{match.Segment}, match.Groups)
	}
}

func TestAlignRejectsInvalidCalendarDate(t *testing.T) {
	e := Align([]string{"20230230"}, CompileSource("yyyyMMdd"), defaultDate)
	assert.False(t, e.Matches[0].Dated)
}

func TestAlignMalformedTemplateSegment(t *testing.T) {
	e := Align([]string{"20120804"}, CompileSource("yyyyMMdd[.*"), defaultDate)
	assert.False(t, e.Matches[0].Dated, "a malformed segment is treated as no pattern")
}

func TestExtractionAt(t *testing.T) {
	e := Align(SplitPath("/a/20120804/IMG.jpg"), CompileSource("yyyyMMdd/[.*]"), defaultDate)

	assert.Equal(t, "IMG.jpg", e.At(0).Segment)
	assert.Equal(t, "20120804", e.At(1).Segment)

	unaligned := e.At(2)
	assert.Equal(t, 1, unaligned.Index)
	assert.Equal(t, []string{"a"}, unaligned.Groups)

	assert.Equal(t, -1, e.At(4).Index)
	assert.Nil(t, e.At(4).Groups)
}
