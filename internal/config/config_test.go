package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayTime(t *testing.T) {
	cases := []struct {
		in   string
		want DayTime
	}{
		{"10:30", DayTime{Hour: 10, Minute: 30}},
		{"00:00", DayTime{Hour: 0, Minute: 0}},
		{"23:59", DayTime{Hour: 23, Minute: 59}},
		{"9:05", DayTime{Hour: 9, Minute: 5}},
	}
	for _, tc := range cases {
		got, err := ParseDayTime(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "25:00", "12:60", "noon", "-1:30"} {
		_, err := ParseDayTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestDayTimeMinutes(t *testing.T) {
	assert.Equal(t, 630, DayTime{Hour: 10, Minute: 30}.Minutes())
	assert.Equal(t, 1290, DayTime{Hour: 21, Minute: 30}.Minutes())
	assert.Equal(t, 0, DayTime{}.Minutes())
}

func TestDayTimeString(t *testing.T) {
	assert.Equal(t, "10:30", DayTime{Hour: 10, Minute: 30}.String())
	assert.Equal(t, "09:05", DayTime{Hour: 9, Minute: 5}.String())
}
