package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// Значения по умолчанию для гибкого и повторяющегося планов
const (
	DefaultTolerance = domain.ToleranceExact
	DefaultTimeOfDay = domain.TimeOfDayMorning
)

// Planner хранит ровно один активный вариант плана и поля, нужные только ему.
// Не потокобезопасен: принадлежит одному черновику.
type Planner struct {
	checker AvailabilityChecker

	kind      domain.PlanKind
	date      *time.Time
	timeSlot  *types.TimeString
	tolerance *domain.ToleranceWindow
	timeOfDay *domain.TimeOfDay
	startDate *time.Time
	endDate   *time.Time
	frequency *domain.Frequency

	// занятость слотов, закешированная только для текущей даты точного плана
	availability *domain.Availability
}

// NewPlanner создает планировщик с активным точным планом.
// checker может быть nil, тогда занятость всегда неизвестна.
func NewPlanner(checker AvailabilityChecker) *Planner {
	return &Planner{
		checker: checker,
		kind:    domain.PlanExact,
	}
}

// Kind возвращает активный вариант плана
func (p *Planner) Kind() domain.PlanKind {
	return p.kind
}

// SwitchTo активирует другой вариант плана и отбрасывает поля, которые ему не нужны
func (p *Planner) SwitchTo(ctx context.Context, kind domain.PlanKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownPlanKind, kind)
	}
	if kind == p.kind {
		return nil
	}

	switch kind {
	case domain.PlanExact:
		p.tolerance = nil
		p.timeOfDay = nil
		p.startDate = nil
		p.endDate = nil
		p.frequency = nil
	case domain.PlanFlexible:
		p.timeSlot = nil
		p.startDate = nil
		p.endDate = nil
		p.frequency = nil
	case domain.PlanRecurring:
		p.date = nil
		p.timeSlot = nil
		p.tolerance = nil
	}
	p.kind = kind

	if kind == domain.PlanExact {
		p.refreshAvailability(ctx)
	} else {
		p.availability = nil
	}
	return nil
}

// SetDate задает дату точного или гибкого плана.
// Для точного плана при смене даты перечитывается занятость слотов.
func (p *Planner) SetDate(ctx context.Context, date time.Time) {
	d := domain.DateOf(date)
	p.date = &d
	if p.kind == domain.PlanExact {
		p.refreshAvailability(ctx)
	}
}

// SetTimeSlot задает слот точного плана
func (p *Planner) SetTimeSlot(slot types.TimeString) {
	p.timeSlot = &slot
}

// SetTolerance задает допуск гибкого плана
func (p *Planner) SetTolerance(w domain.ToleranceWindow) {
	p.tolerance = &w
}

// SetTimeOfDay задает предпочтительное время суток
func (p *Planner) SetTimeOfDay(t domain.TimeOfDay) {
	p.timeOfDay = &t
}

// SetStartDate задает начало периода повторяющегося плана
func (p *Planner) SetStartDate(date time.Time) {
	d := domain.DateOf(date)
	p.startDate = &d
}

// SetEndDate задает конец периода повторяющегося плана
func (p *Planner) SetEndDate(date time.Time) {
	d := domain.DateOf(date)
	p.endDate = &d
}

// SetFrequency задает частоту повторяющегося плана
func (p *Planner) SetFrequency(f domain.Frequency) {
	p.frequency = &f
}

// RefreshAvailability перечитывает занятость для текущей даты точного плана
func (p *Planner) RefreshAvailability(ctx context.Context) {
	p.availability = nil
	p.refreshAvailability(ctx)
}

// Availability возвращает закешированную занятость текущей даты.
// false, если точный план не активен или дата не выбрана.
func (p *Planner) Availability() (domain.Availability, bool) {
	if p.availability == nil {
		return domain.Availability{}, false
	}
	return *p.availability, true
}

func (p *Planner) refreshAvailability(ctx context.Context) {
	if p.date == nil {
		p.availability = nil
		return
	}
	if p.availability != nil && p.availability.Date.Equal(*p.date) {
		return
	}

	a := domain.UnknownAvailability(*p.date)
	if p.checker != nil {
		a = p.checker.Check(ctx, *p.date)
	}
	p.availability = &a
}

// Plan собирает активный вариант плана с подставленными значениями по умолчанию.
// Незаполненные поля остаются нулевыми, полноту проверяет Validate.
func (p *Planner) Plan() domain.SchedulingPlan {
	switch p.kind {
	case domain.PlanFlexible:
		plan := domain.FlexiblePlan{
			Tolerance: DefaultTolerance,
			TimeOfDay: DefaultTimeOfDay,
		}
		if p.date != nil {
			plan.Date = *p.date
		}
		if p.tolerance != nil {
			plan.Tolerance = *p.tolerance
		}
		if p.timeOfDay != nil {
			plan.TimeOfDay = *p.timeOfDay
		}
		return plan
	case domain.PlanRecurring:
		plan := domain.RecurringPlan{TimeOfDay: DefaultTimeOfDay}
		if p.startDate != nil {
			plan.StartDate = *p.startDate
		}
		if p.endDate != nil {
			plan.EndDate = *p.endDate
		}
		if p.frequency != nil {
			plan.Frequency = *p.frequency
		}
		if p.timeOfDay != nil {
			plan.TimeOfDay = *p.timeOfDay
		}
		return plan
	default:
		plan := domain.ExactPlan{}
		if p.date != nil {
			plan.Date = *p.date
		}
		if p.timeSlot != nil {
			plan.TimeSlot = *p.timeSlot
		}
		return plan
	}
}

// Validate проверяет активный план относительно текущего момента.
// Возвращает ErrIncompleteSchedule, обернутую вместе с первым невыполненным правилом.
func (p *Planner) Validate(now time.Time) error {
	var reason error
	switch p.kind {
	case domain.PlanFlexible:
		reason = p.validateFlexible(now)
	case domain.PlanRecurring:
		reason = p.validateRecurring(now)
	default:
		reason = p.validateExact(now)
	}

	if reason != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteSchedule, reason)
	}
	return nil
}

func (p *Planner) validateExact(now time.Time) error {
	if p.date == nil {
		return ErrDateRequired
	}
	if p.date.Before(domain.DateOf(now)) {
		return ErrDateInPast
	}
	if p.timeSlot == nil || p.timeSlot.IsZero() {
		return ErrTimeSlotRequired
	}
	if !domain.IsCatalogSlot(*p.timeSlot) {
		return ErrUnknownTimeSlot
	}
	if p.availability != nil && p.availability.Date.Equal(*p.date) && p.availability.IsUnavailable(*p.timeSlot) {
		return ErrSlotUnavailable
	}
	return nil
}

func (p *Planner) validateFlexible(now time.Time) error {
	if p.date == nil {
		return ErrDateRequired
	}
	if p.date.Before(domain.DateOf(now)) {
		return ErrDateInPast
	}
	if p.tolerance != nil && !p.tolerance.IsValid() {
		return ErrInvalidTolerance
	}
	if p.timeOfDay != nil && !p.timeOfDay.IsValid() {
		return ErrInvalidTimeOfDay
	}
	return nil
}

func (p *Planner) validateRecurring(now time.Time) error {
	if p.startDate == nil {
		return ErrStartDateRequired
	}
	if p.startDate.Before(domain.DateOf(now)) {
		return ErrStartDateInPast
	}
	if p.endDate == nil {
		return ErrEndDateRequired
	}
	if p.endDate.Before(*p.startDate) {
		return ErrEndBeforeStart
	}
	if (domain.RecurringPlan{StartDate: *p.startDate, EndDate: *p.endDate}).ExceedsHorizon() {
		return ErrRangeTooLong
	}
	if p.frequency == nil {
		return ErrFrequencyRequired
	}
	if !p.frequency.IsValid() {
		return ErrInvalidFrequency
	}
	if p.timeOfDay != nil && !p.timeOfDay.IsValid() {
		return ErrInvalidTimeOfDay
	}
	return nil
}
