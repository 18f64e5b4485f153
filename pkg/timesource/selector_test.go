package timesource

import (
	"testing"
	"time"

	"github.com/majorfi/datetool/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestNewCandidate(t *testing.T) {
	now := time.Date(2012, time.August, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, NewCandidate(now, true).Valid)
	assert.False(t, NewCandidate(now, false).Valid)
	assert.False(t, NewCandidate(time.Time{}, true).Valid, "the zero time is never valid")
}

func TestSelect(t *testing.T) {
	meta := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	path := time.Date(2012, 8, 4, 0, 0, 0, 0, time.UTC)
	mtime := time.Date(2020, 5, 6, 0, 0, 0, 0, time.UTC)

	all := Candidates{
		utils.SourceMetadata:   NewCandidate(meta, true),
		utils.SourcePath:       NewCandidate(path, true),
		utils.SourceModifyTime: NewCandidate(mtime, true),
	}

	tests := []struct {
		name       string
		priority   []utils.TTimeSource
		candidates Candidates
		ok         bool
		expected   time.Time
		source     utils.TTimeSource
	}{
		{
			name:       "first valid wins",
			priority:   []utils.TTimeSource{utils.SourceMetadata, utils.SourcePath, utils.SourceModifyTime},
			candidates: all,
			ok:         true,
			expected:   meta,
			source:     utils.SourceMetadata,
		},
		{
			name:     "invalid metadata falls through to path",
			priority: []utils.TTimeSource{utils.SourceMetadata, utils.SourcePath, utils.SourceModifyTime},
			candidates: Candidates{
				utils.SourceMetadata:   {},
				utils.SourcePath:       NewCandidate(path, true),
				utils.SourceModifyTime: NewCandidate(mtime, true),
			},
			ok:       true,
			expected: path,
			source:   utils.SourcePath,
		},
		{
			name:       "order is the configured order",
			priority:   []utils.TTimeSource{utils.SourceModifyTime, utils.SourceMetadata},
			candidates: all,
			ok:         true,
			expected:   mtime,
			source:     utils.SourceModifyTime,
		},
		{
			name:       "sources outside the priority are never used",
			priority:   []utils.TTimeSource{utils.SourcePath},
			candidates: Candidates{utils.SourceModifyTime: NewCandidate(mtime, true)},
			ok:         false,
		},
		{
			name:     "nothing valid",
			priority: []utils.TTimeSource{utils.SourceMetadata, utils.SourcePath},
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source, ok := Select(tt.priority, tt.candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.source, source)
		})
	}
}
