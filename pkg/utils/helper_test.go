package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: []string{}},
		{name: "single item", input: "path", expected: []string{"path"}},
		{name: "trims whitespace", input: " metadata , path,modifyTime ", expected: []string{"metadata", "path", "modifyTime"}},
		{name: "drops empty items", input: "a,,b,", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	result := NormalizeExtensions([]string{"JPG", ".mp4", "jpg", " .MTS ", ""})
	assert.Equal(t, []string{".jpg", ".mp4", ".mts"}, result)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{".jpg", ".png"}, ".png"))
	assert.False(t, Contains([]string{".jpg", ".png"}, ".PNG"))
	assert.False(t, Contains(nil, ".jpg"))
}

func TestParseTimeSources(t *testing.T) {
	t.Run("canonical names keep order", func(t *testing.T) {
		sources, err := ParseTimeSources([]string{"metadata", "path", "modifyTime"})
		require.NoError(t, err)
		assert.Equal(t, []TTimeSource{SourceMetadata, SourcePath, SourceModifyTime}, sources)
	})

	t.Run("aliases and duplicates", func(t *testing.T) {
		sources, err := ParseTimeSources([]string{"EXIF", "mtime", "exif", "Path"})
		require.NoError(t, err)
		assert.Equal(t, []TTimeSource{SourceMetadata, SourceModifyTime, SourcePath}, sources)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := ParseTimeSources([]string{"path", "ctime"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ctime")
	})
}

func TestParseTimeTargets(t *testing.T) {
	targets, err := ParseTimeTargets([]string{"mtime", "metadata"})
	require.NoError(t, err)
	assert.True(t, targets[TargetModifyTime])
	assert.True(t, targets[TargetMetadata])

	_, err = ParseTimeTargets([]string{"path"})
	assert.Error(t, err)
}
