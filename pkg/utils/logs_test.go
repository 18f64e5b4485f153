package utils

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func TestMapping(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	Mapping(&buf, "20120804/IMG_001.jpg", "2012/20120804/IMG_001.jpg", "2012-08-04T10:11:12.000+02:00")
	assert.Equal(t, "20120804/IMG_001.jpg -> 2012/20120804/IMG_001.jpg (2012-08-04T10:11:12.000+02:00)\n", buf.String())
}

func TestField(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	Field(&buf, "source", "path")
	assert.Equal(t, "    source:      path\n", buf.String())
}

func TestWarningAndFailure(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	Warning(&buf, "No time for a.jpg")
	Failure(&buf, "boom")
	assert.Equal(t, "No time for a.jpg\nboom\n", buf.String())
}

func TestPretty(t *testing.T) {
	withoutColor(t)
	type sample struct {
		Name   string
		Groups []string
	}
	var buf bytes.Buffer
	Pretty(&buf, sample{Name: "IMG_001.jpg", Groups: []string{"IMG_001.jpg"}})

	output := buf.String()
	assert.Contains(t, output, "----------------------------------")
	assert.Contains(t, output, `Name: (string) (len=11) "IMG_001.jpg"`)
	assert.Contains(t, output, "Groups: ([]string)")
}
