package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func TestTotalPriceCents(t *testing.T) {
	cases := []struct {
		name    string
		rate    int64
		pickup  string
		dropoff string
		want    int64
	}{
		{"one hour", 10000, "2026-06-01T10:00:00Z", "2026-06-01T11:00:00Z", 10000},
		{"two and a half hours", 10000, "2026-06-01T10:00:00Z", "2026-06-01T12:30:00Z", 25000},
		{"one minute", 6000, "2026-06-01T10:00:00Z", "2026-06-01T10:01:00Z", 100},
		{"one second", 3600, "2026-06-01T10:00:00Z", "2026-06-01T10:00:01Z", 1},
		{"multi day", 12550, "2026-06-01T08:00:00Z", "2026-06-03T08:00:00Z", 602400},
		{"zero window", 10000, "2026-06-01T10:00:00Z", "2026-06-01T10:00:00Z", 0},
		{"negative window", 10000, "2026-06-01T11:00:00Z", "2026-06-01T10:00:00Z", 0},
		{"zero rate", 0, "2026-06-01T10:00:00Z", "2026-06-01T12:00:00Z", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalPriceCents(tc.rate, ts(t, tc.pickup), ts(t, tc.dropoff))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTotalPriceCentsIsDeterministic(t *testing.T) {
	pickup := ts(t, "2026-06-01T09:13:00Z")
	dropoff := ts(t, "2026-06-01T17:47:00Z")
	first := TotalPriceCents(7333, pickup, dropoff)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, TotalPriceCents(7333, pickup, dropoff))
	}
}

func TestDivRoundHalfEven(t *testing.T) {
	cases := []struct {
		num, den, want int64
	}{
		{10, 2, 5},
		{7, 2, 4},  // 3.5 rounds to even 4
		{5, 2, 2},  // 2.5 rounds to even 2
		{9, 4, 2},  // 2.25 rounds down
		{11, 4, 3}, // 2.75 rounds up
		{0, 3600, 0},
		{3599, 3600, 1},
		{1799, 3600, 0},
		{1800, 3600, 0}, // exactly half, even quotient stays
		{5400, 3600, 2}, // 1.5 rounds to even 2
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, divRoundHalfEven(tc.num, tc.den),
			"%d/%d", tc.num, tc.den)
	}
}
