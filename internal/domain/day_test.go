package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	b := DayBoundary{Location: loc, ResetHour: 4}

	beforeReset := time.Date(2024, 3, 10, 3, 59, 0, 0, loc)
	afterReset := time.Date(2024, 3, 10, 4, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), b.Day(beforeReset))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), b.Day(afterReset))

	assert.True(t, b.NextReset(beforeReset).Equal(afterReset))
	assert.True(t, b.NextReset(afterReset).Equal(afterReset.AddDate(0, 0, 1)))
}

func TestDayBoundary_NilLocation(t *testing.T) {
	b := DayBoundary{}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), b.Day(now))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), b.NextReset(now))
}
