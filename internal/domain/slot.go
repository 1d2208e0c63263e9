package domain

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

type slotWindow struct {
	Name        string
	Start       types.TimeString
	End         types.TimeString
	StepMinutes int
}

// SlotCatalog returns the fixed bookable slot starts of a day in order
func SlotCatalog() []types.TimeString {
	slots := make([]types.TimeString, 0)
	for _, w := range slotWindows {
		current := w.Start
		for !current.IsAfter(w.End) {
			slots = append(slots, current)
			next, err := current.AddMinutes(w.StepMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}
	return slots
}

// IsCatalogSlot reports whether slot is one of the fixed slots
func IsCatalogSlot(slot types.TimeString) bool {
	for _, s := range SlotCatalog() {
		if s == slot {
			return true
		}
	}
	return false
}

// Availability is the advisory view of one date's slots.
// Known is false when existing bookings could not be read.
type Availability struct {
	Date        time.Time
	Known       bool
	Unavailable map[types.TimeString]struct{}
}

// UnknownAvailability is the result of a failed lookup
func UnknownAvailability(date time.Time) Availability {
	return Availability{Date: DateOf(date), Known: false}
}

// IsUnavailable is true only when the slot is known to be taken
func (a Availability) IsUnavailable(slot types.TimeString) bool {
	if !a.Known {
		return false
	}
	_, taken := a.Unavailable[slot]
	return taken
}

// UnavailableSlots returns taken slots in catalog order
func (a Availability) UnavailableSlots() []types.TimeString {
	out := make([]types.TimeString, 0, len(a.Unavailable))
	for _, s := range SlotCatalog() {
		if _, taken := a.Unavailable[s]; taken {
			out = append(out, s)
		}
	}
	return out
}

// AvailableSlots returns the complement of the taken slots against the catalog.
// Nil when availability is unknown.
func (a Availability) AvailableSlots() []types.TimeString {
	if !a.Known {
		return nil
	}
	out := make([]types.TimeString, 0)
	for _, s := range SlotCatalog() {
		if _, taken := a.Unavailable[s]; !taken {
			out = append(out, s)
		}
	}
	return out
}
