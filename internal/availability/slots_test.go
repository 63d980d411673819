package availability

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"salonpos-backend/internal/domain"
)

var testDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

func defaultRequest(duration time.Duration) Request {
	return Request{
		Date:            testDate,
		ServiceDuration: duration,
		WorkdayStart:    DefaultWorkdayStart,
		WorkdayEnd:      DefaultWorkdayEnd,
		Granularity:     DefaultGranularity,
	}
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func contains(slots []string, want string) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}

func TestComputeAvailableSlots_ConfirmedBookingBlocksOverlaps(t *testing.T) {
	busy := []Booking{{Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: domain.AppointmentConfirmed}}

	slots, err := ComputeAvailableSlots(defaultRequest(60*time.Minute), busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := FormatSlots(slots)
	for _, absent := range []string{"09:30", "10:00", "10:30"} {
		if contains(got, absent) {
			t.Errorf("slot %s overlaps the 10:00-11:00 booking but was returned", absent)
		}
	}
	for _, present := range []string{"09:00", "11:00", "18:30"} {
		if !contains(got, present) {
			t.Errorf("expected slot %s in %v", present, got)
		}
	}
	if len(got) != 17 {
		t.Fatalf("expected 17 slots, got %d: %v", len(got), got)
	}
}

func TestComputeAvailableSlots_HalfHourService(t *testing.T) {
	busy := []Booking{{Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"), Status: domain.AppointmentConfirmed}}

	slots, err := ComputeAvailableSlots(defaultRequest(30*time.Minute), busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := FormatSlots(slots)
	if contains(got, "10:00") || contains(got, "10:30") {
		t.Fatalf("expected 10:00 and 10:30 to be taken, got %v", got)
	}
	for _, present := range []string{"09:00", "09:30", "11:00"} {
		if !contains(got, present) {
			t.Errorf("expected slot %s in %v", present, got)
		}
	}
}

func TestComputeAvailableSlots_CancelledDoesNotBlock(t *testing.T) {
	busy := []Booking{{Start: mustTime(t, "09:00"), End: mustTime(t, "19:00"), Status: domain.AppointmentCancelled}}

	slots, err := ComputeAvailableSlots(defaultRequest(45*time.Minute), busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 20 {
		t.Fatalf("expected all 20 slots, got %d", len(slots))
	}
}

func TestComputeAvailableSlots_PendingBlocks(t *testing.T) {
	busy := []Booking{{Start: mustTime(t, "09:00"), End: mustTime(t, "19:00"), Status: domain.AppointmentPending}}

	slots, err := ComputeAvailableSlots(defaultRequest(30*time.Minute), busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", FormatSlots(slots))
	}
}

func TestComputeAvailableSlots_NoOverlapProperty(t *testing.T) {
	busy := []Booking{
		{Start: mustTime(t, "09:15"), End: mustTime(t, "09:45"), Status: domain.AppointmentConfirmed},
		{Start: mustTime(t, "12:00"), End: mustTime(t, "13:30"), Status: domain.AppointmentPending},
		{Start: mustTime(t, "16:40"), End: mustTime(t, "17:05"), Status: domain.AppointmentConfirmed},
	}
	for _, minutes := range []int{15, 30, 45, 60, 90, 120} {
		duration := time.Duration(minutes) * time.Minute
		slots, err := ComputeAvailableSlots(defaultRequest(duration), busy)
		if err != nil {
			t.Fatalf("duration %d: unexpected error: %v", minutes, err)
		}
		if len(slots) == 0 {
			t.Fatalf("duration %d: expected some slots", minutes)
		}
		for i, s := range slots {
			if i > 0 && slots[i-1] >= s {
				t.Fatalf("duration %d: slots not ascending: %v", minutes, FormatSlots(slots))
			}
			end := s.Add(duration)
			for _, b := range busy {
				if s < b.End && end > b.Start {
					t.Fatalf("duration %d: slot %s overlaps booking %s-%s", minutes, s, b.Start, b.End)
				}
			}
		}
	}
}

func TestComputeAvailableSlots_Deterministic(t *testing.T) {
	busy := []Booking{{Start: mustTime(t, "14:00"), End: mustTime(t, "15:00"), Status: domain.AppointmentConfirmed}}
	req := defaultRequest(60 * time.Minute)

	first, err := ComputeAvailableSlots(req, busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeAvailableSlots(req, busy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v and %v", first, second)
	}
}

func TestComputeAvailableSlots_ClipToWorkday(t *testing.T) {
	req := defaultRequest(90 * time.Minute)

	unclipped, err := ComputeAvailableSlots(req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := unclipped[len(unclipped)-1].String(); last != "18:30" {
		t.Fatalf("expected unclipped window to end at 18:30, got %s", last)
	}

	req.ClipToWorkday = true
	clipped, err := ComputeAvailableSlots(req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := clipped[len(clipped)-1].String(); last != "17:30" {
		t.Fatalf("expected clipped window to end at 17:30, got %s", last)
	}
}

func TestComputeAvailableSlots_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"zero duration", defaultRequest(0)},
		{"negative duration", defaultRequest(-30 * time.Minute)},
		{"missing date", Request{ServiceDuration: time.Hour, WorkdayStart: DefaultWorkdayStart, WorkdayEnd: DefaultWorkdayEnd, Granularity: DefaultGranularity}},
		{"zero granularity", Request{Date: testDate, ServiceDuration: time.Hour, WorkdayStart: DefaultWorkdayStart, WorkdayEnd: DefaultWorkdayEnd}},
		{"inverted window", Request{Date: testDate, ServiceDuration: time.Hour, WorkdayStart: DefaultWorkdayEnd, WorkdayEnd: DefaultWorkdayStart, Granularity: DefaultGranularity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeAvailableSlots(tt.req, nil)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9*60+5 || got.String() != "09:05" {
		t.Fatalf("unexpected value %d (%s)", got, got)
	}
	for _, bad := range []string{"", "9am", "25:00", "10:61"} {
		if _, err := ParseTimeOfDay(bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseTimeOfDay(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
