package create_booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings/models"
	submitBooking "github.com/m04kA/SMC-DroneBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	AssetID       string           `json:"assetId"`
	AssetCategory string           `json:"assetCategory"`
	Services      []ServiceRequest `json:"services"`
	Plan          PlanRequest      `json:"plan"`
	Contact       ContactRequest   `json:"contact"`
	Notes         *string          `json:"notes,omitempty"`
	ForceSlot     bool             `json:"forceSlot,omitempty"`
}

// ServiceRequest выбранная услуга. Значение группы - строка или массив строк.
type ServiceRequest struct {
	Type    string                  `json:"type"`
	Options map[string]OptionValues `json:"options,omitempty"`
}

// OptionValues значения группы опций
type OptionValues []string

// UnmarshalJSON принимает "Overview" или ["Roofs", "Facades"]
func (v *OptionValues) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = OptionValues{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return fmt.Errorf("option value must be a string or an array of strings: %w", err)
	}
	*v = multi
	return nil
}

// PlanRequest план бронирования; даты в формате YYYY-MM-DD, слот HH:MM
type PlanRequest struct {
	Kind      string  `json:"kind"`
	Date      *string `json:"date,omitempty"`
	TimeSlot  *string `json:"timeSlot,omitempty"`
	Tolerance *string `json:"tolerance,omitempty"`
	TimeOfDay *string `json:"timeOfDay,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
}

// ContactRequest новый контакт или ID сохраненного
type ContactRequest struct {
	ExistingID      *string `json:"existingId,omitempty"`
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	AvailableOnsite *bool   `json:"availableOnsite,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID string                  `json:"bookingId"`
	Booking   *models.BookingResponse `json:"booking"`
	Warnings  []string                `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	plan, err := r.Plan.toUseCase()
	if err != nil {
		return nil, err
	}

	services := make([]submitBooking.ServiceRequest, len(r.Services))
	for i, s := range r.Services {
		options := make(map[string][]string, len(s.Options))
		for key, values := range s.Options {
			options[key] = values
		}
		services[i] = submitBooking.ServiceRequest{
			Type:    domain.ServiceType(s.Type),
			Options: options,
		}
	}

	return &submitBooking.Request{
		Asset: domain.AssetRef{
			ID:       r.AssetID,
			Category: domain.AssetCategory(r.AssetCategory),
		},
		Services: services,
		Plan:     plan,
		Contact: submitBooking.ContactRequest{
			ExistingID:      r.Contact.ExistingID,
			Name:            r.Contact.Name,
			Phone:           r.Contact.Phone,
			Email:           r.Contact.Email,
			AvailableOnsite: r.Contact.AvailableOnsite,
		},
		Notes:     r.Notes,
		ForceSlot: r.ForceSlot,
	}, nil
}

func (p PlanRequest) toUseCase() (submitBooking.PlanRequest, error) {
	out := submitBooking.PlanRequest{Kind: domain.PlanKind(p.Kind)}

	dates := []struct {
		name string
		src  *string
		dst  **time.Time
	}{
		{"date", p.Date, &out.Date},
		{"startDate", p.StartDate, &out.StartDate},
		{"endDate", p.EndDate, &out.EndDate},
	}
	for _, d := range dates {
		if d.src == nil {
			continue
		}
		parsed, err := time.Parse(domain.DateFormat, *d.src)
		if err != nil {
			return out, fmt.Errorf("%w: %s", ErrInvalidDate, d.name)
		}
		*d.dst = &parsed
	}

	if p.TimeSlot != nil {
		slot, err := types.NewTimeStringFromString(*p.TimeSlot)
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		out.TimeSlot = &slot
	}
	if p.Tolerance != nil {
		w := domain.ToleranceWindow(*p.Tolerance)
		out.Tolerance = &w
	}
	if p.TimeOfDay != nil {
		t := domain.TimeOfDay(*p.TimeOfDay)
		out.TimeOfDay = &t
	}
	if p.Frequency != nil {
		f := domain.Frequency(*p.Frequency)
		out.Frequency = &f
	}
	return out, nil
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(res *submitBooking.Result) *CreateBookingResponse {
	warnings := make([]string, len(res.Warnings))
	for i, w := range res.Warnings {
		warnings[i] = string(w)
	}
	return &CreateBookingResponse{
		BookingID: res.BookingID,
		Booking:   models.FromDomainBooking(res.Booking),
		Warnings:  warnings,
	}
}
