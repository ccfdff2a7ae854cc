package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	base := 10 * time.Second

	for i := 0; i < 100; i++ {
		d := Duration(base, 0.5)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}

	assert.Equal(t, base, Duration(base, 0))
}

func TestUntilNextHour(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Duration
	}{
		{
			name: "hour still ahead today",
			now:  time.Date(2025, 6, 15, 1, 30, 0, 0, time.UTC),
			hour: 3,
			want: 90 * time.Minute,
		},
		{
			name: "hour already passed rolls to tomorrow",
			now:  time.Date(2025, 6, 15, 4, 0, 0, 0, time.UTC),
			hour: 3,
			want: 23 * time.Hour,
		},
		{
			name: "exactly at the hour rolls to tomorrow",
			now:  time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC),
			hour: 3,
			want: 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UntilNextHour(tt.now, tt.hour))
		})
	}
}

func TestExponentialBackoff(t *testing.T) {
	base := time.Second
	max := 10 * time.Second

	assert.Equal(t, time.Second, ExponentialBackoff(base, max, 0, 0))
	assert.Equal(t, 4*time.Second, ExponentialBackoff(base, max, 2, 0))
	// Рост ограничен потолком.
	assert.Equal(t, max, ExponentialBackoff(base, max, 10, 0))
}
