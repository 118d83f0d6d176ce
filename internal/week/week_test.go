package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEpochIsFirstMonday(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 6), epochMonday)
	assert.Equal(t, time.Monday, epochMonday.Weekday())
}

func TestNumberOfWeekOne(t *testing.T) {
	for d := 6; d <= 12; d++ {
		n, err := NumberOf(date(2025, time.January, d))
		require.NoError(t, err)
		assert.Equal(t, 1, n, "2025-01-%02d", d)
	}
}

func TestSundayBelongsToEndingWeek(t *testing.T) {
	// 2025-01-12 is the Sunday closing week 1, not the eve of week 2.
	n, err := NumberOf(date(2025, time.January, 12))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = NumberOf(date(2025, time.January, 13))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRoundTrip(t *testing.T) {
	for n := 1; n <= 260; n++ {
		start, end, err := RangeOf(n)
		require.NoError(t, err)

		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, time.Sunday, end.Weekday())
		assert.Equal(t, start.AddDate(0, 0, 6), end)

		gotStart, err := NumberOf(start)
		require.NoError(t, err)
		gotEnd, err := NumberOf(end)
		require.NoError(t, err)
		assert.Equal(t, n, gotStart)
		assert.Equal(t, n, gotEnd)
	}
}

func TestEveryDayOfWeekMapsToSameBucket(t *testing.T) {
	start, _, err := RangeOf(37)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		n, err := NumberOf(start.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, 37, n)
	}
}

func TestNumberOfRejectsInvalid(t *testing.T) {
	_, err := NumberOf(time.Time{})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NumberOf(date(2024, time.December, 29))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRangeOfRejectsInvalid(t *testing.T) {
	_, _, err := RangeOf(0)
	assert.ErrorIs(t, err, ErrInvalidWeek)
	_, _, err = RangeOf(-3)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}

func TestYearOfFollowsStartDate(t *testing.T) {
	y, err := YearOf(1)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)

	// Week 52 of 2025 starts 2025-12-29 and spills into 2026 but is
	// still attributed to 2025.
	start, end, err := RangeOf(52)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.December, 29), start)
	assert.Equal(t, date(2026, time.January, 4), end)
	y, err = YearOf(52)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-17")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 17), got)

	_, err = ParseDate("17/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
