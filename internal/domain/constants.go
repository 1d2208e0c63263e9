package domain

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxContactNameLength = 200

	// MaxRecurringYears is the longest accepted recurring range
	MaxRecurringYears = 2
	// MaxOccurrences bounds the expansion of a single recurring plan
	MaxOccurrences = 366*MaxRecurringYears + 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot catalog windows. Start and end are both bookable slot starts.
var slotWindows = []slotWindow{
	{Name: "morning", Start: "09:00", End: "11:00", StepMinutes: 60},
	{Name: "afternoon", Start: "12:00", End: "17:00", StepMinutes: 60},
}

// ActiveStatuses bookings in these states occupy their slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
}
