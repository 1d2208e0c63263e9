package notifier

import "time"

// EventBookingCreated тип события о новом бронировании
const EventBookingCreated = "booking.created"

// Summary краткое содержание бронирования для получателя уведомления
type Summary struct {
	BookingID   string    `json:"booking_id"`
	CompanyRef  string    `json:"company_ref"`
	AssetRef    string    `json:"asset_ref"`
	Requester   string    `json:"requester_ref"`
	Services    []string  `json:"services"`
	PlanKind    string    `json:"plan_kind"`
	FirstDate   string    `json:"first_date"`
	LastDate    string    `json:"last_date,omitempty"`
	TimeSlot    string    `json:"time_slot,omitempty"`
	TimeOfDay   string    `json:"time_of_day,omitempty"`
	Occurrences int       `json:"occurrences"`
	ContactName string    `json:"contact_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// envelope тело запроса вебхука
type envelope struct {
	Event   string  `json:"event"`
	Booking Summary `json:"booking"`
}
