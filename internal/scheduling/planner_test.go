package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

var now = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return domain.DateOf(now).AddDate(0, 0, offset)
}

type fakeChecker struct {
	calls   []time.Time
	results map[string]domain.Availability
}

func (f *fakeChecker) Check(_ context.Context, date time.Time) domain.Availability {
	f.calls = append(f.calls, date)
	if a, ok := f.results[date.Format(domain.DateFormat)]; ok {
		return a
	}
	return domain.Availability{Date: date, Known: true}
}

func taken(date time.Time, slots ...types.TimeString) domain.Availability {
	set := make(map[types.TimeString]struct{}, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return domain.Availability{Date: date, Known: true, Unavailable: set}
}

func TestPlanner_ExactValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(p *Planner)
		reason error
	}{
		{
			name:   "no date",
			setup:  func(p *Planner) {},
			reason: ErrDateRequired,
		},
		{
			name: "date in past",
			setup: func(p *Planner) {
				p.SetDate(ctx, day(-1))
				p.SetTimeSlot("10:00")
			},
			reason: ErrDateInPast,
		},
		{
			name: "no time slot",
			setup: func(p *Planner) {
				p.SetDate(ctx, day(3))
			},
			reason: ErrTimeSlotRequired,
		},
		{
			name: "slot outside catalog",
			setup: func(p *Planner) {
				p.SetDate(ctx, day(3))
				p.SetTimeSlot("08:00")
			},
			reason: ErrUnknownTimeSlot,
		},
		{
			name: "slot already booked",
			setup: func(p *Planner) {
				p.SetDate(ctx, day(5))
				p.SetTimeSlot("10:00")
			},
			reason: ErrSlotUnavailable,
		},
		{
			name: "today is allowed",
			setup: func(p *Planner) {
				p.SetDate(ctx, now)
				p.SetTimeSlot("16:00")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{results: map[string]domain.Availability{
				day(5).Format(domain.DateFormat): taken(day(5), "10:00"),
			}}
			p := NewPlanner(checker)
			tt.setup(p)

			err := p.Validate(now)
			if tt.reason == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrIncompleteSchedule)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestPlanner_ExactUnknownAvailabilityDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	checker := &fakeChecker{results: map[string]domain.Availability{
		day(2).Format(domain.DateFormat): domain.UnknownAvailability(day(2)),
	}}
	p := NewPlanner(checker)
	p.SetDate(ctx, day(2))
	p.SetTimeSlot("10:00")

	assert.NoError(t, p.Validate(now))

	a, ok := p.Availability()
	require.True(t, ok)
	assert.False(t, a.Known)
}

func TestPlanner_AvailabilityCachedPerDate(t *testing.T) {
	ctx := context.Background()
	checker := &fakeChecker{}
	p := NewPlanner(checker)

	p.SetDate(ctx, day(1))
	p.SetDate(ctx, day(1).Add(5*time.Hour))
	assert.Len(t, checker.calls, 1)

	p.SetDate(ctx, day(2))
	assert.Len(t, checker.calls, 2)

	p.RefreshAvailability(ctx)
	assert.Len(t, checker.calls, 3)
}

func TestPlanner_NilChecker(t *testing.T) {
	p := NewPlanner(nil)
	p.SetDate(context.Background(), day(1))
	p.SetTimeSlot("09:00")

	require.NoError(t, p.Validate(now))
	a, ok := p.Availability()
	require.True(t, ok)
	assert.False(t, a.Known)
}

func TestPlanner_FlexibleDefaults(t *testing.T) {
	p := NewPlanner(nil)
	require.NoError(t, p.SwitchTo(context.Background(), domain.PlanFlexible))
	p.SetDate(context.Background(), day(4))

	require.NoError(t, p.Validate(now))

	plan, ok := p.Plan().(domain.FlexiblePlan)
	require.True(t, ok)
	assert.Equal(t, domain.ToleranceExact, plan.Tolerance)
	assert.Equal(t, domain.TimeOfDayMorning, plan.TimeOfDay)
	assert.Equal(t, day(4), plan.Date)
}

func TestPlanner_FlexibleValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(p *Planner)
		reason error
	}{
		{"no date", func(p *Planner) {}, ErrDateRequired},
		{"past date", func(p *Planner) { p.SetDate(ctx, day(-2)) }, ErrDateInPast},
		{"bad tolerance", func(p *Planner) {
			p.SetDate(ctx, day(1))
			p.SetTolerance("5d")
		}, ErrInvalidTolerance},
		{"bad time of day", func(p *Planner) {
			p.SetDate(ctx, day(1))
			p.SetTimeOfDay("midnight")
		}, ErrInvalidTimeOfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(nil)
			require.NoError(t, p.SwitchTo(ctx, domain.PlanFlexible))
			tt.setup(p)

			err := p.Validate(now)
			assert.ErrorIs(t, err, ErrIncompleteSchedule)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestPlanner_RecurringValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(p *Planner)
		reason error
	}{
		{"no start", func(p *Planner) {}, ErrStartDateRequired},
		{"start in past", func(p *Planner) {
			p.SetStartDate(day(-1))
			p.SetEndDate(day(10))
		}, ErrStartDateInPast},
		{"no end", func(p *Planner) { p.SetStartDate(day(1)) }, ErrEndDateRequired},
		{"end before start", func(p *Planner) {
			p.SetStartDate(day(10))
			p.SetEndDate(day(9))
			p.SetFrequency(domain.FrequencyWeekly)
		}, ErrEndBeforeStart},
		{"range over horizon", func(p *Planner) {
			p.SetStartDate(day(1))
			p.SetEndDate(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
			p.SetFrequency(domain.FrequencyDaily)
		}, ErrRangeTooLong},
		{"range at horizon", func(p *Planner) {
			p.SetStartDate(day(1))
			p.SetEndDate(day(1).AddDate(domain.MaxRecurringYears, 0, 0))
			p.SetFrequency(domain.FrequencyDaily)
		}, nil},
		{"no frequency", func(p *Planner) {
			p.SetStartDate(day(1))
			p.SetEndDate(day(30))
		}, ErrFrequencyRequired},
		{"bad frequency", func(p *Planner) {
			p.SetStartDate(day(1))
			p.SetEndDate(day(30))
			p.SetFrequency("hourly")
		}, ErrInvalidFrequency},
		{"valid", func(p *Planner) {
			p.SetStartDate(day(1))
			p.SetEndDate(day(1))
			p.SetFrequency(domain.FrequencyDaily)
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(nil)
			require.NoError(t, p.SwitchTo(ctx, domain.PlanRecurring))
			tt.setup(p)

			err := p.Validate(now)
			if tt.reason == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrIncompleteSchedule)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestPlanner_SwitchDiscardsIrrelevantFields(t *testing.T) {
	ctx := context.Background()
	checker := &fakeChecker{}
	p := NewPlanner(checker)
	p.SetDate(ctx, day(3))
	p.SetTimeSlot("10:00")

	require.NoError(t, p.SwitchTo(ctx, domain.PlanRecurring))
	_, hasAvailability := p.Availability()
	assert.False(t, hasAvailability)

	require.NoError(t, p.SwitchTo(ctx, domain.PlanExact))
	plan, ok := p.Plan().(domain.ExactPlan)
	require.True(t, ok)
	assert.True(t, plan.Date.IsZero())
	assert.True(t, plan.TimeSlot.IsZero())
}

func TestPlanner_SwitchExactToFlexibleKeepsDate(t *testing.T) {
	ctx := context.Background()
	p := NewPlanner(nil)
	p.SetDate(ctx, day(3))
	p.SetTimeSlot("10:00")

	require.NoError(t, p.SwitchTo(ctx, domain.PlanFlexible))
	require.NoError(t, p.SwitchTo(ctx, domain.PlanExact))

	plan := p.Plan().(domain.ExactPlan)
	assert.Equal(t, day(3), plan.Date)
	assert.True(t, plan.TimeSlot.IsZero())
}

func TestPlanner_SwitchToExactRefreshesAvailability(t *testing.T) {
	ctx := context.Background()
	checker := &fakeChecker{}
	p := NewPlanner(checker)
	require.NoError(t, p.SwitchTo(ctx, domain.PlanFlexible))
	p.SetDate(ctx, day(6))
	assert.Empty(t, checker.calls)

	require.NoError(t, p.SwitchTo(ctx, domain.PlanExact))
	assert.Len(t, checker.calls, 1)
}

func TestPlanner_SwitchUnknownKind(t *testing.T) {
	p := NewPlanner(nil)
	err := p.SwitchTo(context.Background(), "someday")
	assert.ErrorIs(t, err, ErrUnknownPlanKind)
	assert.Equal(t, domain.PlanExact, p.Kind())
}

func TestPlanner_SwitchFlexibleToRecurringKeepsOnlyTimeOfDay(t *testing.T) {
	ctx := context.Background()
	p := NewPlanner(nil)
	require.NoError(t, p.SwitchTo(ctx, domain.PlanFlexible))
	p.SetDate(ctx, day(3))
	p.SetTimeOfDay(domain.TimeOfDayEvening)

	require.NoError(t, p.SwitchTo(ctx, domain.PlanRecurring))
	plan := p.Plan().(domain.RecurringPlan)
	assert.Equal(t, domain.TimeOfDayEvening, plan.TimeOfDay)
	assert.True(t, plan.StartDate.IsZero(), "date is not carried into startDate")

	require.NoError(t, p.SwitchTo(ctx, domain.PlanFlexible))
	back := p.Plan().(domain.FlexiblePlan)
	assert.True(t, back.Date.IsZero())
	assert.Equal(t, domain.TimeOfDayEvening, back.TimeOfDay)
}
