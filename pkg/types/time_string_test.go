package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, ts.Minutes())

	for _, bad := range []string{"", "8:30", "25:00", "08:61", "08-30"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, bad)
	}
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("23:30")

	next, err := ts.AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:45"), next)

	_, err = ts.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestComparisons(t *testing.T) {
	a, b := TimeString("09:00"), TimeString("17:00")
	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.True(t, a.Equal("09:00"))
}

func TestOn(t *testing.T) {
	date := time.Date(2023, 3, 16, 12, 45, 10, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 3, 16, 7, 15, 0, 0, time.UTC), TimeString("07:15").On(date))
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:15:00")))
	assert.Equal(t, TimeString("21:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 6, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("06:05"), ts)

	assert.Error(t, ts.Scan(42))
}
