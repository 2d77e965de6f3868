package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-03-15T12:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	_, err = ParseDate("15/03/2026", time.UTC)
	assert.EqualError(t, err, "must be in YYYY-MM-DD format")

	_, err = ParseDate("tomorrow", time.UTC)
	assert.Error(t, err)

	_, err = ParseDate("  ", time.UTC)
	assert.Error(t, err)
}

func TestDaysUntil_Ceiling(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		raw  string
		want int
	}{
		{"2026-03-11", 1}, // 14.5 hours
		{"2026-03-12", 2},
		{"2026-03-17", 7},
		{"2026-03-10T09:30:00Z", 0},
		{"2026-03-10T09:31:00Z", 1},
	}
	for _, tc := range cases {
		got, ok := DaysUntil(now, tc.raw)
		assert.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	_, ok := DaysUntil(now, "2026/03/12")
	assert.False(t, ok)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("PKT", 5*3600)
	instant := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC) // 02:00 next day in PKT

	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), DateOnly(instant, loc))
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), DateOnly(instant, nil))
}

func TestSequenceNameGenerator(t *testing.T) {
	g := NewSequenceNameGenerator(1001)
	assert.Equal(t, "PL-1001", g.PlanningName())
	assert.Equal(t, "PL-1002", g.PlanningName())
}

func TestRandomNameGenerator(t *testing.T) {
	g := NewRandomNameGenerator()
	for i := 0; i < 50; i++ {
		name := g.PlanningName()
		assert.Regexp(t, `^PL-[1-9][0-9]{3}$`, name)
	}
}
