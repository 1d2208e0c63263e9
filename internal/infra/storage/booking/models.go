package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// columns порядок колонок таблицы bookings для SELECT и INSERT
var columns = []string{
	"id",
	"asset_ref",
	"asset_category",
	"company_ref",
	"requester_ref",
	"services",
	"configuration",
	"plan_kind",
	"plan_date",
	"time_slot",
	"tolerance",
	"time_of_day",
	"start_date",
	"end_date",
	"frequency",
	"contact_id",
	"contact_name",
	"contact_phone",
	"contact_email",
	"contact_available_onsite",
	"notes",
	"status",
	"created_at",
}

// row плоское представление бронирования в таблице bookings.
// Вариант плана хранится в plan_kind, поля чужих вариантов равны NULL.
type row struct {
	ID                     string
	AssetRef               string
	AssetCategory          string
	CompanyRef             string
	RequesterRef           string
	Services               []byte
	Configuration          []byte
	PlanKind               string
	PlanDate               sql.NullTime
	TimeSlot               sql.NullString
	Tolerance              sql.NullString
	TimeOfDay              sql.NullString
	StartDate              sql.NullTime
	EndDate                sql.NullTime
	Frequency              sql.NullString
	ContactID              string
	ContactName            string
	ContactPhone           string
	ContactEmail           sql.NullString
	ContactAvailableOnsite bool
	Notes                  sql.NullString
	Status                 string
	CreatedAt              time.Time
}

// scanTargets возвращает указатели на поля в порядке columns
func (r *row) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.AssetRef,
		&r.AssetCategory,
		&r.CompanyRef,
		&r.RequesterRef,
		&r.Services,
		&r.Configuration,
		&r.PlanKind,
		&r.PlanDate,
		&r.TimeSlot,
		&r.Tolerance,
		&r.TimeOfDay,
		&r.StartDate,
		&r.EndDate,
		&r.Frequency,
		&r.ContactID,
		&r.ContactName,
		&r.ContactPhone,
		&r.ContactEmail,
		&r.ContactAvailableOnsite,
		&r.Notes,
		&r.Status,
		&r.CreatedAt,
	}
}

// values возвращает значения в порядке columns.
// JSON передается строкой: lib/pq кодирует []byte как bytea.
func (r *row) values() []interface{} {
	return []interface{}{
		r.ID,
		r.AssetRef,
		r.AssetCategory,
		r.CompanyRef,
		r.RequesterRef,
		string(r.Services),
		string(r.Configuration),
		r.PlanKind,
		dateValue(r.PlanDate),
		r.TimeSlot,
		r.Tolerance,
		r.TimeOfDay,
		dateValue(r.StartDate),
		dateValue(r.EndDate),
		r.Frequency,
		r.ContactID,
		r.ContactName,
		r.ContactPhone,
		r.ContactEmail,
		r.ContactAvailableOnsite,
		r.Notes,
		r.Status,
		r.CreatedAt,
	}
}

// dateValue передает дату в колонку DATE строкой, чтобы не зависеть от часового пояса сессии
func dateValue(t sql.NullTime) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Time.Format(domain.DateFormat)
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: domain.DateOf(t), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return ptr.Ptr(s.String)
}

// toRow раскладывает бронирование по колонкам
func toRow(b *domain.Booking) (*row, error) {
	services := make([]string, len(b.Services))
	for i, st := range b.Services {
		services[i] = string(st)
	}
	servicesJSON, err := json.Marshal(services)
	if err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrEncode, err)
	}

	configuration := b.Configuration
	if configuration == nil {
		configuration = domain.ServiceConfiguration{}
	}
	configJSON, err := json.Marshal(configuration)
	if err != nil {
		return nil, fmt.Errorf("%w: configuration: %v", ErrEncode, err)
	}

	r := &row{
		ID:                     b.ID,
		AssetRef:               b.AssetRef,
		AssetCategory:          string(b.AssetCategory),
		CompanyRef:             b.CompanyRef,
		RequesterRef:           b.RequesterRef,
		Services:               servicesJSON,
		Configuration:          configJSON,
		ContactID:              b.Contact.ID,
		ContactName:            b.Contact.Name,
		ContactPhone:           b.Contact.Phone,
		ContactAvailableOnsite: b.Contact.AvailableOnsite,
		Status:                 string(b.Status),
		CreatedAt:              b.CreatedAt,
	}
	if b.Contact.Email != nil {
		r.ContactEmail = nullString(*b.Contact.Email)
	}
	if b.Notes != nil {
		r.Notes = nullString(*b.Notes)
	}

	switch plan := b.Plan.(type) {
	case domain.ExactPlan:
		r.PlanKind = string(domain.PlanExact)
		r.PlanDate = nullDate(plan.Date)
		r.TimeSlot = nullString(plan.TimeSlot.String())
	case domain.FlexiblePlan:
		r.PlanKind = string(domain.PlanFlexible)
		r.PlanDate = nullDate(plan.Date)
		r.Tolerance = nullString(string(plan.Tolerance))
		r.TimeOfDay = nullString(string(plan.TimeOfDay))
	case domain.RecurringPlan:
		r.PlanKind = string(domain.PlanRecurring)
		r.StartDate = nullDate(plan.StartDate)
		r.EndDate = nullDate(plan.EndDate)
		r.Frequency = nullString(string(plan.Frequency))
		r.TimeOfDay = nullString(string(plan.TimeOfDay))
	default:
		return nil, fmt.Errorf("%w: unsupported plan %T", ErrEncode, b.Plan)
	}

	return r, nil
}

// toDomain собирает бронирование из строки
func (r *row) toDomain() (*domain.Booking, error) {
	var services []string
	if err := json.Unmarshal(r.Services, &services); err != nil {
		return nil, fmt.Errorf("%w: services of %s: %v", ErrDecode, r.ID, err)
	}

	configuration := domain.ServiceConfiguration{}
	if len(r.Configuration) > 0 {
		if err := json.Unmarshal(r.Configuration, &configuration); err != nil {
			return nil, fmt.Errorf("%w: configuration of %s: %v", ErrDecode, r.ID, err)
		}
	}

	plan, err := r.plan()
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:            r.ID,
		AssetRef:      r.AssetRef,
		AssetCategory: domain.AssetCategory(r.AssetCategory),
		CompanyRef:    r.CompanyRef,
		RequesterRef:  r.RequesterRef,
		Services:      make([]domain.ServiceType, len(services)),
		Configuration: configuration,
		Plan:          plan,
		Contact: domain.SiteContact{
			ID:              r.ContactID,
			CompanyRef:      r.CompanyRef,
			Name:            r.ContactName,
			Phone:           r.ContactPhone,
			Email:           fromNullString(r.ContactEmail),
			AvailableOnsite: r.ContactAvailableOnsite,
		},
		Notes:     fromNullString(r.Notes),
		Status:    domain.BookingStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
	for i, s := range services {
		b.Services[i] = domain.ServiceType(s)
	}

	return b, nil
}

func (r *row) plan() (domain.SchedulingPlan, error) {
	switch domain.PlanKind(r.PlanKind) {
	case domain.PlanExact:
		slot, err := types.NewTimeStringFromString(r.TimeSlot.String)
		if err != nil {
			return nil, fmt.Errorf("%w: time slot of %s: %v", ErrDecode, r.ID, err)
		}
		return domain.ExactPlan{
			Date:     domain.DateOf(r.PlanDate.Time),
			TimeSlot: slot,
		}, nil
	case domain.PlanFlexible:
		return domain.FlexiblePlan{
			Date:      domain.DateOf(r.PlanDate.Time),
			Tolerance: domain.ToleranceWindow(r.Tolerance.String),
			TimeOfDay: domain.TimeOfDay(r.TimeOfDay.String),
		}, nil
	case domain.PlanRecurring:
		return domain.RecurringPlan{
			StartDate: domain.DateOf(r.StartDate.Time),
			EndDate:   domain.DateOf(r.EndDate.Time),
			Frequency: domain.Frequency(r.Frequency.String),
			TimeOfDay: domain.TimeOfDay(r.TimeOfDay.String),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown plan kind %q of %s", ErrDecode, r.PlanKind, r.ID)
	}
}
