package domain

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// PlanKind names the scheduling strategy
type PlanKind string

const (
	PlanExact     PlanKind = "exact"
	PlanFlexible  PlanKind = "flexible"
	PlanRecurring PlanKind = "recurring"
)

// IsValid returns true if the kind is a recognized value
func (k PlanKind) IsValid() bool {
	switch k {
	case PlanExact, PlanFlexible, PlanRecurring:
		return true
	}
	return false
}

// ToleranceWindow is how far a flexible booking may move from its date
type ToleranceWindow string

const (
	ToleranceExact    ToleranceWindow = "exact"
	ToleranceOneDay   ToleranceWindow = "1d"
	ToleranceThreeDay ToleranceWindow = "3d"
	ToleranceOneWeek  ToleranceWindow = "1w"
	ToleranceTwoWeek  ToleranceWindow = "2w"
)

// Days returns the tolerance in days on each side of the date
func (w ToleranceWindow) Days() int {
	switch w {
	case ToleranceOneDay:
		return 1
	case ToleranceThreeDay:
		return 3
	case ToleranceOneWeek:
		return 7
	case ToleranceTwoWeek:
		return 14
	default:
		return 0
	}
}

// IsValid returns true if the window is a recognized value
func (w ToleranceWindow) IsValid() bool {
	switch w {
	case ToleranceExact, ToleranceOneDay, ToleranceThreeDay, ToleranceOneWeek, ToleranceTwoWeek:
		return true
	}
	return false
}

// TimeOfDay is a coarse preferred time used by flexible and recurring plans
type TimeOfDay string

const (
	TimeOfDayEarlyMorning TimeOfDay = "early_morning"
	TimeOfDayMorning      TimeOfDay = "morning"
	TimeOfDayAfternoon    TimeOfDay = "afternoon"
	TimeOfDayEvening      TimeOfDay = "evening"
)

// IsValid returns true if the time of day is a recognized value
func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayEarlyMorning, TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return true
	}
	return false
}

// Frequency is the repetition step of a recurring plan
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// IsValid returns true if the frequency is a recognized value
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// SchedulingPlan is the closed set of plan variants:
// ExactPlan, FlexiblePlan, RecurringPlan.
type SchedulingPlan interface {
	Kind() PlanKind
	isSchedulingPlan()
}

// ExactPlan books a specific slot on a specific date
type ExactPlan struct {
	Date     time.Time
	TimeSlot types.TimeString
}

func (ExactPlan) Kind() PlanKind     { return PlanExact }
func (ExactPlan) isSchedulingPlan() {}

// FlexiblePlan books around a date with a tolerance
type FlexiblePlan struct {
	Date      time.Time
	Tolerance ToleranceWindow
	TimeOfDay TimeOfDay
}

func (FlexiblePlan) Kind() PlanKind     { return PlanFlexible }
func (FlexiblePlan) isSchedulingPlan() {}

// Window returns the earliest and latest acceptable dates
func (p FlexiblePlan) Window() (time.Time, time.Time) {
	days := p.Tolerance.Days()
	return p.Date.AddDate(0, 0, -days), p.Date.AddDate(0, 0, days)
}

// RecurringPlan repeats over a date range
type RecurringPlan struct {
	StartDate time.Time
	EndDate   time.Time
	Frequency Frequency
	TimeOfDay TimeOfDay
}

func (RecurringPlan) Kind() PlanKind     { return PlanRecurring }
func (RecurringPlan) isSchedulingPlan() {}

// ExceedsHorizon reports whether the range is longer than MaxRecurringYears
func (p RecurringPlan) ExceedsHorizon() bool {
	return p.EndDate.After(p.StartDate.AddDate(MaxRecurringYears, 0, 0))
}

// Occurrences expands the range into visit dates, at most MaxOccurrences of them.
// Monthly and quarterly steps clamp to the last day of shorter months.
func (p RecurringPlan) Occurrences() []time.Time {
	if p.StartDate.IsZero() || p.EndDate.Before(p.StartDate) || !p.Frequency.IsValid() {
		return nil
	}

	out := make([]time.Time, 0)
	for i := 0; i < MaxOccurrences; i++ {
		next := p.occurrence(i)
		if next.After(p.EndDate) {
			break
		}
		out = append(out, next)
	}
	return out
}

func (p RecurringPlan) occurrence(i int) time.Time {
	switch p.Frequency {
	case FrequencyDaily:
		return p.StartDate.AddDate(0, 0, i)
	case FrequencyWeekly:
		return p.StartDate.AddDate(0, 0, 7*i)
	case FrequencyBiWeekly:
		return p.StartDate.AddDate(0, 0, 14*i)
	case FrequencyMonthly:
		return addMonthsClamped(p.StartDate, i)
	default:
		return addMonthsClamped(p.StartDate, 3*i)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// DateOf strips the clock part and normalizes to UTC midnight of the same calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two times fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
