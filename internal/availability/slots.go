package availability

import (
	"fmt"
	"time"

	"salonpos-backend/internal/domain"
)

// TimeOfDay is a wall-clock time expressed as minutes after midnight.
type TimeOfDay int

const (
	DefaultWorkdayStart TimeOfDay = 9 * 60
	DefaultWorkdayEnd   TimeOfDay = 19 * 60
	DefaultGranularity            = 30 * time.Minute
)

const timeLayout = "15:04"

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidInput, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add moves t forward by d, truncated to whole minutes. The result may pass 24:00.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// Booking is an existing appointment interval [Start, End).
type Booking struct {
	Start  TimeOfDay
	End    TimeOfDay
	Status domain.AppointmentStatus
}

type Request struct {
	Date            time.Time
	ServiceDuration time.Duration
	WorkdayStart    TimeOfDay
	WorkdayEnd      TimeOfDay
	Granularity     time.Duration
	// ClipToWorkday rejects slots whose end runs past WorkdayEnd.
	ClipToWorkday bool
}

func (r Request) validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if r.ServiceDuration < time.Minute {
		return fmt.Errorf("%w: service duration must be positive", domain.ErrInvalidInput)
	}
	if r.Granularity < time.Minute {
		return fmt.Errorf("%w: slot granularity must be positive", domain.ErrInvalidInput)
	}
	if r.WorkdayEnd <= r.WorkdayStart {
		return fmt.Errorf("%w: workday end must be after workday start", domain.ErrInvalidInput)
	}
	return nil
}

// ComputeAvailableSlots returns, in ascending order, every slot start in
// [WorkdayStart, WorkdayEnd) stepping by Granularity whose interval
// [start, start+ServiceDuration) does not overlap a pending or confirmed booking.
func ComputeAvailableSlots(req Request, existing []Booking) ([]TimeOfDay, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	slots := make([]TimeOfDay, 0)
	for current := req.WorkdayStart; current < req.WorkdayEnd; current = current.Add(req.Granularity) {
		slotEnd := current.Add(req.ServiceDuration)
		if req.ClipToWorkday && slotEnd > req.WorkdayEnd {
			continue
		}
		if !overlapsAny(current, slotEnd, existing) {
			slots = append(slots, current)
		}
	}
	return slots, nil
}

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// overlap iff aStart < bEnd && aEnd > bStart.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}

// Conflicts reports whether [start,end) overlaps a pending or confirmed booking.
func Conflicts(start, end TimeOfDay, existing []Booking) bool {
	return overlapsAny(start, end, existing)
}

func overlapsAny(start, end TimeOfDay, existing []Booking) bool {
	for _, b := range existing {
		if !b.Status.Blocking() {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// FormatSlots renders slots as "HH:MM" strings.
func FormatSlots(slots []TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
