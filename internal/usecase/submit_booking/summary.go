package submit_booking

import (
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/integrations/notifier"
)

// buildSummary собирает краткое содержание бронирования для уведомления
func buildSummary(b *domain.Booking) notifier.Summary {
	services := make([]string, len(b.Services))
	for i, st := range b.Services {
		services[i] = string(st)
	}

	s := notifier.Summary{
		BookingID:   b.ID,
		CompanyRef:  b.CompanyRef,
		AssetRef:    b.AssetRef,
		Requester:   b.RequesterRef,
		Services:    services,
		PlanKind:    string(b.Plan.Kind()),
		Occurrences: 1,
		ContactName: b.Contact.Name,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}

	switch plan := b.Plan.(type) {
	case domain.ExactPlan:
		s.FirstDate = plan.Date.Format(domain.DateFormat)
		s.TimeSlot = plan.TimeSlot.String()
	case domain.FlexiblePlan:
		earliest, latest := plan.Window()
		s.FirstDate = earliest.Format(domain.DateFormat)
		s.LastDate = latest.Format(domain.DateFormat)
		s.TimeOfDay = string(plan.TimeOfDay)
	case domain.RecurringPlan:
		s.FirstDate = plan.StartDate.Format(domain.DateFormat)
		s.LastDate = plan.EndDate.Format(domain.DateFormat)
		s.TimeOfDay = string(plan.TimeOfDay)
		s.Occurrences = len(plan.Occurrences())
	}

	return s
}
