package market

import (
	"math"
	"testing"
	"time"
)

func TestSnapshot_Valid(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, kst)

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{
			name: "complete snapshot",
			snap: Snapshot{Rate: 1456.20, Change: -12.30, ChangePercent: -0.84, Timestamp: day},
			want: true,
		},
		{
			name: "zero change is still valid",
			snap: Snapshot{Rate: 1456.20, Timestamp: day},
			want: true,
		},
		{
			name: "zero value",
			snap: Snapshot{},
			want: false,
		},
		{
			name: "missing timestamp",
			snap: Snapshot{Rate: 1456.20, Change: -12.30, ChangePercent: -0.84},
			want: false,
		},
		{
			name: "zero rate",
			snap: Snapshot{Change: -12.30, ChangePercent: -0.84, Timestamp: day},
			want: false,
		},
		{
			name: "negative rate",
			snap: Snapshot{Rate: -1, Timestamp: day},
			want: false,
		},
		{
			name: "NaN rate",
			snap: Snapshot{Rate: math.NaN(), Timestamp: day},
			want: false,
		},
		{
			name: "NaN change percent",
			snap: Snapshot{Rate: 1456.20, ChangePercent: math.NaN(), Timestamp: day},
			want: false,
		},
		{
			name: "infinite change",
			snap: Snapshot{Rate: 1456.20, Change: math.Inf(1), Timestamp: day},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_HasRate(t *testing.T) {
	if !(Snapshot{Rate: 1400}).HasRate() {
		t.Error("HasRate() = false for a positive rate")
	}
	if (Snapshot{}).HasRate() {
		t.Error("HasRate() = true for a zero rate")
	}
	if (Snapshot{Rate: math.Inf(1)}).HasRate() {
		t.Error("HasRate() = true for an infinite rate")
	}
}
