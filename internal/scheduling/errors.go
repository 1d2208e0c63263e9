package scheduling

import "errors"

var (
	// ErrIncompleteSchedule оборачивает первое невыполненное правило валидации
	ErrIncompleteSchedule = errors.New("scheduling: incomplete schedule")

	// ErrUnknownPlanKind возвращается при переключении на неизвестный вариант плана
	ErrUnknownPlanKind = errors.New("scheduling: unknown plan kind")
)

// Причины ErrIncompleteSchedule
var (
	ErrDateRequired      = errors.New("date is required")
	ErrDateInPast        = errors.New("date is in the past")
	ErrTimeSlotRequired  = errors.New("time slot is required")
	ErrUnknownTimeSlot   = errors.New("time slot is not in the slot catalog")
	ErrSlotUnavailable   = errors.New("time slot is already booked")
	ErrInvalidTolerance  = errors.New("unknown tolerance window")
	ErrInvalidTimeOfDay  = errors.New("unknown time of day")
	ErrStartDateRequired = errors.New("start date is required")
	ErrStartDateInPast   = errors.New("start date is in the past")
	ErrEndDateRequired   = errors.New("end date is required")
	ErrEndBeforeStart    = errors.New("end date is before start date")
	ErrRangeTooLong      = errors.New("recurring range is too long")
	ErrFrequencyRequired = errors.New("frequency is required")
	ErrInvalidFrequency  = errors.New("unknown frequency")
)
