package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid returns true if the status is a recognized value
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is the aggregate produced by a successful submission.
// Only Status changes after creation, and not by this service.
type Booking struct {
	ID            string
	AssetRef      string
	AssetCategory AssetCategory
	CompanyRef    string
	RequesterRef  string
	Services      []ServiceType
	Configuration ServiceConfiguration
	Plan          SchedulingPlan
	Contact       SiteContact
	Notes         *string
	Status        BookingStatus
	CreatedAt     time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// ExactSlot returns the date and slot of an Exact booking
func (b *Booking) ExactSlot() (ExactPlan, bool) {
	plan, ok := b.Plan.(ExactPlan)
	return plan, ok
}

// BookingScope limits which existing bookings are read.
// AssetRef narrows a company scope to a single asset.
type BookingScope struct {
	CompanyRef string
	AssetRef   *string
	ExactDate  *time.Time // only Exact plans on this date
	Status     *BookingStatus
}

// Session identifies who is submitting
type Session struct {
	RequesterRef string
	CompanyRef   string
}

// IsValid returns true when both references are present
func (s Session) IsValid() bool {
	return s.RequesterRef != "" && s.CompanyRef != ""
}

// AvailabilityScope decides how broadly slot conflicts are considered
type AvailabilityScope string

const (
	AvailabilityScopeAsset   AvailabilityScope = "asset"
	AvailabilityScopeCompany AvailabilityScope = "company"
)

// IsValid returns true if the scope is a recognized value
func (s AvailabilityScope) IsValid() bool {
	return s == AvailabilityScopeAsset || s == AvailabilityScopeCompany
}

// For builds the booking scope used to read conflicting bookings
func (s AvailabilityScope) For(companyRef, assetRef string) BookingScope {
	scope := BookingScope{CompanyRef: companyRef}
	if s != AvailabilityScopeCompany && assetRef != "" {
		asset := assetRef
		scope.AssetRef = &asset
	}
	return scope
}
