package leveling

import (
	"testing"
	"time"
)

func Test_DateOnly(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "StripsTime",
			in:   time.Date(2025, time.July, 4, 18, 30, 45, 123, time.UTC),
			want: day(2025, time.July, 4),
		},
		{
			name: "AlreadyMidnight",
			in:   day(2025, time.July, 4),
			want: day(2025, time.July, 4),
		},
		{
			name: "LocalZoneConvertedToUTC",
			in:   time.Date(2025, time.July, 4, 22, 0, 0, 0, est),
			want: day(2025, time.July, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOnly(tt.in); !got.Equal(tt.want) {
				t.Errorf("DateOnly(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func Test_SameDay(t *testing.T) {
	a := time.Date(2025, time.July, 4, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, time.July, 4, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("SameDay() = false for timestamps on the same UTC date")
	}
	if SameDay(b, c) {
		t.Error("SameDay() = true across a UTC midnight boundary")
	}
}
