package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCompanyBookingsRequest запрос на получение бронирований компании
type GetCompanyBookingsRequest struct {
	Session    domain.Session `json:"-"`
	CompanyRef string         `json:"companyId"`
	AssetRef   *string        `json:"assetId,omitempty"` // Фильтр по объекту (опционально)
	Date       *time.Time     `json:"date,omitempty"`    // Точные планы на дату (опционально)
	Status     *string        `json:"status,omitempty"`  // Фильтр по статусу (опционально)
}

// ToDomainScope конвертирует request в domain область
func (r *GetCompanyBookingsRequest) ToDomainScope() (domain.BookingScope, error) {
	scope := domain.BookingScope{
		CompanyRef: r.CompanyRef,
		AssetRef:   r.AssetRef,
		ExactDate:  r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return scope, err
		}
		scope.Status = &status
	}

	return scope, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string                                   `json:"id"`
	AssetRef      string                                   `json:"assetId"`
	AssetCategory string                                   `json:"assetCategory"`
	CompanyRef    string                                   `json:"companyId"`
	RequesterRef  string                                   `json:"requesterId"`
	Services      []string                                 `json:"services"`
	Configuration map[string]map[string]domain.OptionValue `json:"configuration"`
	Plan          PlanResponse                             `json:"plan"`
	Contact       ContactResponse                          `json:"contact"`
	Notes         *string                                  `json:"notes,omitempty"`
	Status        string                                   `json:"status"`
	CreatedAt     time.Time                                `json:"createdAt"`
}

// PlanResponse план бронирования; заполнены только поля его варианта
type PlanResponse struct {
	Kind         string   `json:"kind"`
	Date         string   `json:"date,omitempty"`     // "2026-10-25"
	TimeSlot     string   `json:"timeSlot,omitempty"` // "10:00"
	Tolerance    string   `json:"tolerance,omitempty"`
	EarliestDate string   `json:"earliestDate,omitempty"`
	LatestDate   string   `json:"latestDate,omitempty"`
	TimeOfDay    string   `json:"timeOfDay,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	Occurrences  []string `json:"occurrences,omitempty"`
}

// ContactResponse контакт на объекте
type ContactResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           *string   `json:"email,omitempty"`
	AvailableOnsite bool      `json:"availableOnsite"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	services := make([]string, len(b.Services))
	for i, st := range b.Services {
		services[i] = string(st)
	}

	configuration := make(map[string]map[string]domain.OptionValue, len(b.Configuration))
	for st, groups := range b.Configuration {
		values := make(map[string]domain.OptionValue, len(groups))
		for key, v := range groups {
			values[key] = v.Clone()
		}
		configuration[string(st)] = values
	}

	return &BookingResponse{
		ID:            b.ID,
		AssetRef:      b.AssetRef,
		AssetCategory: string(b.AssetCategory),
		CompanyRef:    b.CompanyRef,
		RequesterRef:  b.RequesterRef,
		Services:      services,
		Configuration: configuration,
		Plan:          FromDomainPlan(b.Plan),
		Contact:       FromDomainContact(b.Contact),
		Notes:         b.Notes,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

// FromDomainPlan конвертирует план в DTO
func FromDomainPlan(plan domain.SchedulingPlan) PlanResponse {
	switch p := plan.(type) {
	case domain.ExactPlan:
		return PlanResponse{
			Kind:     string(p.Kind()),
			Date:     p.Date.Format(domain.DateFormat),
			TimeSlot: p.TimeSlot.String(),
		}
	case domain.FlexiblePlan:
		earliest, latest := p.Window()
		return PlanResponse{
			Kind:         string(p.Kind()),
			Date:         p.Date.Format(domain.DateFormat),
			Tolerance:    string(p.Tolerance),
			EarliestDate: earliest.Format(domain.DateFormat),
			LatestDate:   latest.Format(domain.DateFormat),
			TimeOfDay:    string(p.TimeOfDay),
		}
	case domain.RecurringPlan:
		occurrences := p.Occurrences()
		dates := make([]string, len(occurrences))
		for i, d := range occurrences {
			dates[i] = d.Format(domain.DateFormat)
		}
		return PlanResponse{
			Kind:        string(p.Kind()),
			StartDate:   p.StartDate.Format(domain.DateFormat),
			EndDate:     p.EndDate.Format(domain.DateFormat),
			Frequency:   string(p.Frequency),
			TimeOfDay:   string(p.TimeOfDay),
			Occurrences: dates,
		}
	}
	return PlanResponse{}
}

// FromDomainContact конвертирует контакт в DTO
func FromDomainContact(c domain.SiteContact) ContactResponse {
	return ContactResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		AvailableOnsite: c.AvailableOnsite,
		CreatedAt:       c.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
