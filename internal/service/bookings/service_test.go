package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DroneBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DroneBookingService/pkg/logger"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
)

type fakeRepo struct {
	bookings map[string]*domain.Booking
	err      error
	scopes   []domain.BookingScope
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) ListByScope(_ context.Context, scope domain.BookingScope) ([]*domain.Booking, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CompanyRef == scope.CompanyRef {
			out = append(out, b)
		}
	}
	return out, nil
}

var (
	date    = time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
	session = domain.Session{RequesterRef: "user-1", CompanyRef: "company-1"}
)

func newRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*domain.Booking{
		"b-1": {
			ID:            "b-1",
			AssetRef:      "asset-1",
			AssetCategory: "buildings",
			CompanyRef:    "company-1",
			RequesterRef:  "user-2",
			Services:      []domain.ServiceType{"Visual Inspection"},
			Configuration: domain.ServiceConfiguration{
				"Visual Inspection": {
					"coverage": domain.MultiValue("Roofs"),
					"detail":   domain.SingleValue("Overview"),
				},
			},
			Plan:    domain.ExactPlan{Date: date, TimeSlot: "10:00"},
			Contact: domain.SiteContact{ID: "c-1", Name: "Jane", Phone: "0123456789", AvailableOnsite: true},
			Status:  domain.StatusPending,
		},
		"b-2": {
			ID:         "b-2",
			CompanyRef: "company-2",
			Plan: domain.RecurringPlan{
				StartDate: date,
				EndDate:   date.AddDate(0, 2, 0),
				Frequency: domain.FrequencyMonthly,
				TimeOfDay: domain.TimeOfDayMorning,
			},
			Status: domain.StatusPending,
		},
	}}
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(newRepo(), logger.NewNop())

	resp, err := svc.GetByID(context.Background(), "b-1", session)
	require.NoError(t, err)
	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "exact", resp.Plan.Kind)
	assert.Equal(t, "2026-10-25", resp.Plan.Date)
	assert.Equal(t, "10:00", resp.Plan.TimeSlot)
	assert.Equal(t, []string{"Visual Inspection"}, resp.Services)
	assert.Equal(t, "Overview", resp.Configuration["Visual Inspection"]["detail"].Single)
	assert.Equal(t, "Jane", resp.Contact.Name)

	_, err = svc.GetByID(context.Background(), "b-2", session)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), "missing", session)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), "", session)
	assert.ErrorIs(t, err, ErrInvalidInput)

	failing := newRepo()
	failing.err = errors.New("db down")
	_, err = NewService(failing, logger.NewNop()).GetByID(context.Background(), "b-1", session)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetCompanyBookings(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		Session:    session,
		CompanyRef: "company-1",
		AssetRef:   ptr.Ptr("asset-1"),
		Date:       ptr.Ptr(date.Add(15 * time.Hour)),
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	require.Len(t, repo.scopes, 1)
	scope := repo.scopes[0]
	assert.Equal(t, "company-1", scope.CompanyRef)
	assert.Equal(t, "asset-1", *scope.AssetRef)
	assert.Equal(t, date, *scope.ExactDate, "date is normalized to midnight")
	assert.Equal(t, domain.StatusPending, *scope.Status)

	_, err = svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		Session:    session,
		CompanyRef: "company-2",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		Session:    session,
		CompanyRef: "company-1",
		Status:     ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("db down")
	_, err = svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		Session:    session,
		CompanyRef: "company-1",
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFromDomainPlan(t *testing.T) {
	recurring := models.FromDomainPlan(domain.RecurringPlan{
		StartDate: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Frequency: domain.FrequencyMonthly,
		TimeOfDay: domain.TimeOfDayEvening,
	})
	assert.Equal(t, "recurring", recurring.Kind)
	assert.Equal(t, []string{"2026-01-31", "2026-02-28", "2026-03-31", "2026-04-30"}, recurring.Occurrences)

	flexible := models.FromDomainPlan(domain.FlexiblePlan{
		Date:      date,
		Tolerance: domain.ToleranceOneWeek,
		TimeOfDay: domain.TimeOfDayMorning,
	})
	assert.Equal(t, "2026-10-18", flexible.EarliestDate)
	assert.Equal(t, "2026-11-01", flexible.LatestDate)

	empty := models.FromDomainBookingList(nil)
	assert.NotNil(t, empty.Bookings)
}
