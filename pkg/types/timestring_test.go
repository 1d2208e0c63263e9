package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{"hours and minutes", "09:00", "09:00", false},
		{"postgres time", "17:00:00", "17:00", false},
		{"surrounding spaces", " 10:30 ", "10:30", false},
		{"single digit hour", "9:00", "09:00", false},
		{"garbage", "noon", "", true},
		{"out of range", "25:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfDay)

	_, err = TimeString("").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("17:00").IsAfter("12:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("11:00:00"))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan([]byte("12:00")))
	assert.Equal(t, TimeString("12:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("13:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
