package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod, p)

	p, err = ParsePeriod("7d")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Days())
	assert.Equal(t, "Last 7 days", p.Label())

	_, err = ParsePeriod("1y")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestWindowForPeriod(t *testing.T) {
	now := time.Date(2023, 10, 31, 18, 20, 0, 0, time.UTC)
	w, err := WindowForPeriod(Period30Days, now)
	require.NoError(t, err)
	assert.Len(t, w.Days(), 30)
	assert.Equal(t, "2023-10-02", w.Days()[0].Format(DayLayout))
	assert.Equal(t, "2023-10-31", w.Days()[29].Format(DayLayout))
}

func TestAverageDaily(t *testing.T) {
	created := time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC)
	now := time.Date(2023, 10, 31, 15, 45, 0, 0, time.UTC)
	// 16 天，243 / 16 = 15.19
	assert.Equal(t, int64(15), AverageDaily(243, created, now))
	// 不足一天按一天算
	assert.Equal(t, int64(5), AverageDaily(5, now.Add(-time.Hour), now))
}
