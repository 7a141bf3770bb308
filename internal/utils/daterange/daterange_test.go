package daterange_test

import (
	"testing"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2024, time.May, 15, 13, 45, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromPreset(t *testing.T) {
	tests := []struct {
		preset    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{daterange.Today, date(2024, 5, 15), date(2024, 5, 15)},
		{daterange.Yesterday, date(2024, 5, 14), date(2024, 5, 14)},
		{daterange.ThisWeek, date(2024, 5, 13), date(2024, 5, 15)},
		{daterange.LastWeek, date(2024, 5, 6), date(2024, 5, 12)},
		{daterange.ThisMonth, date(2024, 5, 1), date(2024, 5, 15)},
		{daterange.LastMonth, date(2024, 4, 1), date(2024, 4, 30)},
		{daterange.ThisYear, date(2024, 1, 1), date(2024, 5, 15)},
		{daterange.Last7Days, date(2024, 5, 9), date(2024, 5, 15)},
		{daterange.Last30Days, date(2024, 4, 16), date(2024, 5, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			r, err := daterange.FromPreset(tt.preset, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, daterange.EndOfDay(tt.wantEnd), r.End)
		})
	}

	_, err := daterange.FromPreset("fortnight", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolve(t *testing.T) {
	r, err := daterange.Resolve("", "2024-02-01", "2024-02-29", now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), r.Start)
	assert.True(t, r.Contains(date(2024, 2, 29).Add(23*time.Hour)))
	assert.False(t, r.Contains(date(2024, 3, 1)))

	r, err = daterange.Resolve("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 5, 1), r.Start)

	_, err = daterange.Resolve("", "2024-02-01", "", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = daterange.Resolve("", "2024-03-01", "2024-02-01", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = daterange.Resolve("", "01/02/2024", "2024-02-01", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
