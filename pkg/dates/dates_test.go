package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{name: "same instant", b: base, want: 0},
		{name: "thirty days later", b: base.AddDate(0, 0, 30), want: 30},
		{name: "partial day floors down", b: base.Add(36 * time.Hour), want: 1},
		{name: "one day earlier", b: base.AddDate(0, 0, -1), want: -1},
		{name: "one hour earlier floors to minus one", b: base.Add(-time.Hour), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(base, tt.b))
		})
	}
}

func TestParseDay(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDay("2025-06-01")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	// Notion date properties may carry a full datetime.
	got, err = ParseDay("2025-06-01T09:30:00.000+00:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	_, err = ParseDay("not-a-date")
	assert.Error(t, err)
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "2025-06-01", FormatDay(time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)))
	// Conversion to UTC happens before formatting.
	loc := time.FixedZone("NPT", 5*3600+45*60)
	assert.Equal(t, "2025-05-31", FormatDay(time.Date(2025, 6, 1, 2, 0, 0, 0, loc)))
}
