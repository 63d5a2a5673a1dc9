package domain_test

import (
	"testing"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBooking_StartsPending(t *testing.T) {
	b := domain.NewBooking("b1", "r1", "t1", date(2024, 6, 1), date(2024, 12, 1), 1_500_000)

	if b.Status != domain.BookingPending {
		t.Errorf("status = %q, want %q", b.Status, domain.BookingPending)
	}
	if b.TotalPrice != 9_000_000 {
		t.Errorf("total = %d, want %d", b.TotalPrice, 9_000_000)
	}
}

func TestLeaseMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"exactly six months", date(2024, 6, 1), date(2024, 12, 1), 6},
		{"exactly one month", date(2024, 6, 1), date(2024, 7, 1), 1},
		{"partial month rounds up", date(2024, 6, 1), date(2024, 7, 15), 2},
		{"under one month bills as one", date(2024, 6, 1), date(2024, 6, 10), 1},
		{"same day", date(2024, 6, 1), date(2024, 6, 1), 1},
		{"end before start", date(2024, 6, 1), date(2024, 5, 1), 1},
		{"a year", date(2024, 1, 1), date(2025, 1, 1), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.LeaseMonths(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("LeaseMonths(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBookingTransitions_NoApproveFromActive(t *testing.T) {
	// The "active" state is only entered by an external settlement process;
	// the transition table must never approve into or out of it.
	for _, tr := range domain.BookingTransitions {
		if tr.Event == domain.EventApprove && tr.Src != domain.BookingPending {
			t.Errorf("approve from %q should not be allowed", tr.Src)
		}
	}
}

func TestOccupancyChange(t *testing.T) {
	if oc := domain.OccupancyChange("r1", domain.EventApprove); oc == nil || !oc.Occupied {
		t.Errorf("approve: got %+v, want occupied=true", oc)
	}
	if oc := domain.OccupancyChange("r1", domain.EventComplete); oc == nil || oc.Occupied {
		t.Errorf("complete: got %+v, want occupied=false", oc)
	}
	if oc := domain.OccupancyChange("r1", domain.EventCancel); oc != nil {
		t.Errorf("cancel: got %+v, want nil", oc)
	}
}
