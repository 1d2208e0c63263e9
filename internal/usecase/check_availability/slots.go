package check_availability

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// takenSlots собирает слоты, занятые точными планами на дату.
// Гибкие и повторяющиеся планы слот не занимают, отмененные бронирования тоже.
func takenSlots(bookings []*domain.Booking, date time.Time) map[types.TimeString]struct{} {
	taken := make(map[types.TimeString]struct{})

	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}

		plan, ok := booking.ExactSlot()
		if !ok {
			continue
		}
		if !domain.SameDate(plan.Date, date) {
			continue
		}

		taken[plan.TimeSlot] = struct{}{}
	}

	return taken
}
