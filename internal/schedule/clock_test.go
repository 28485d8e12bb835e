package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12:00am", "00:00"},
		{"12:00pm", "12:00"},
		{"1:00pm", "13:00"},
		{"11:59am", "11:59"},
		{"9:30 AM", "09:30"},
		{"10:50am", "10:50"},
		{"4:45PM", "16:45"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "10:00", "0:30am", "13:00pm", "10:75am", "noon"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestTo24Hour(t *testing.T) {
	assert.Equal(t, 0, To24Hour(12, "am"))
	assert.Equal(t, 12, To24Hour(12, "pm"))
	assert.Equal(t, 13, To24Hour(1, "PM"))
	assert.Equal(t, 11, To24Hour(11, "am"))
}

func TestClockJSON(t *testing.T) {
	data, err := json.Marshal(Clock{Hour: 9, Minute: 5})
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(data))

	var c Clock
	require.NoError(t, json.Unmarshal([]byte(`"15:30"`), &c))
	assert.Equal(t, Clock{15, 30}, c)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &c))
}
