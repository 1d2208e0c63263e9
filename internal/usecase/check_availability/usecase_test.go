package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/logger"
	"github.com/m04kA/SMC-DroneBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	scopes   []domain.BookingScope
	// afterRead вызывается после снятия снимка бронирований
	afterRead func()
}

func (f *fakeRepo) ListByScope(_ context.Context, scope domain.BookingScope) ([]*domain.Booking, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	snapshot := append([]*domain.Booking(nil), f.bookings...)
	if f.afterRead != nil {
		f.afterRead()
	}
	return snapshot, nil
}

type fakeCache struct {
	data       map[string]domain.Availability
	generation int64
	err        error
}

func (f *fakeCache) key(scope domain.BookingScope, date time.Time) string {
	return scope.CompanyRef + "/" + ptr.Value(scope.AssetRef) + "/" + date.Format(domain.DateFormat)
}

func (f *fakeCache) Get(_ context.Context, scope domain.BookingScope, date time.Time) (*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.data[f.key(scope, date)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeCache) Generation(_ context.Context, _ domain.BookingScope, _ time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.generation, nil
}

func (f *fakeCache) Set(_ context.Context, scope domain.BookingScope, a domain.Availability, generation int64) error {
	if f.err != nil {
		return f.err
	}
	if generation != f.generation {
		return nil
	}
	f.data[f.key(scope, a.Date)] = a
	return nil
}

func (f *fakeCache) invalidate() {
	f.generation++
	f.data = make(map[string]domain.Availability)
}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) ObserveAvailability(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

var (
	dayD     = time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	otherDay = time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC)
)

func exactBooking(date time.Time, slot types.TimeString, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         "b-" + string(slot),
		AssetRef:   "asset-1",
		CompanyRef: "company-1",
		Plan:       domain.ExactPlan{Date: date, TimeSlot: slot},
		Status:     status,
	}
}

func companyScope() domain.BookingScope {
	return domain.BookingScope{CompanyRef: "company-1"}
}

func TestExecute_ExactBookingMarksSlotOnlyOnItsDate(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		exactBooking(dayD, "10:00", domain.StatusPending),
	}}
	uc := NewUseCase(repo, nil, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.True(t, resp.Known)
	assert.Equal(t, []types.TimeString{"10:00"}, resp.Unavailable)
	assert.NotContains(t, resp.Available, types.TimeString("10:00"))
	assert.Len(t, resp.Available, len(domain.SlotCatalog())-1)

	other, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: otherDay})
	require.NoError(t, err)
	assert.Empty(t, other.Unavailable)
	assert.Contains(t, other.Available, types.TimeString("10:00"))
}

func TestExecute_IgnoresNonExactAndCancelled(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		exactBooking(dayD, "09:00", domain.StatusCancelled),
		{ID: "flex", Plan: domain.FlexiblePlan{Date: dayD, Tolerance: domain.ToleranceExact, TimeOfDay: domain.TimeOfDayMorning}, Status: domain.StatusPending},
		{ID: "rec", Plan: domain.RecurringPlan{StartDate: dayD, EndDate: dayD, Frequency: domain.FrequencyDaily}, Status: domain.StatusPending},
		exactBooking(dayD, "17:00", domain.StatusScheduled),
	}}
	uc := NewUseCase(repo, nil, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"17:00"}, resp.Unavailable)
}

func TestExecute_FetchFailureIsUnknown(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	m := &recordingMetrics{}
	uc := NewUseCase(repo, nil, m, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.False(t, resp.Known)
	assert.Nil(t, resp.Available)
	assert.Empty(t, resp.Unavailable)
	assert.Equal(t, []string{metrics.AvailabilityUnknown}, m.outcomes)
}

func TestExecute_ScopeCarriesDateFilter(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUseCase(repo, nil, nil, logger.NewNop())
	scope := domain.BookingScope{CompanyRef: "company-1", AssetRef: ptr.Ptr("asset-7")}

	_, err := uc.Execute(context.Background(), &Request{Scope: scope, Date: dayD.Add(15 * time.Hour)})
	require.NoError(t, err)

	require.Len(t, repo.scopes, 1)
	got := repo.scopes[0]
	assert.Equal(t, "asset-7", ptr.Value(got.AssetRef))
	require.NotNil(t, got.ExactDate)
	assert.Equal(t, dayD, *got.ExactDate)
}

func TestExecute_UsesCache(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{exactBooking(dayD, "11:00", domain.StatusPending)}}
	cache := &fakeCache{data: make(map[string]domain.Availability)}
	m := &recordingMetrics{}
	uc := NewUseCase(repo, cache, m, logger.NewNop())

	first, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Unavailable, second.Unavailable)

	assert.Len(t, repo.scopes, 1)
	assert.Equal(t, []string{metrics.AvailabilityKnown, metrics.AvailabilityCacheHit}, m.outcomes)
}

func TestExecute_UnknownIsNotCached(t *testing.T) {
	repo := &fakeRepo{err: errors.New("timeout")}
	cache := &fakeCache{data: make(map[string]domain.Availability)}
	uc := NewUseCase(repo, cache, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.Empty(t, cache.data)
}

func TestExecute_SnapshotTakenBeforeInvalidateIsNotCached(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{data: make(map[string]domain.Availability)}
	uc := NewUseCase(repo, cache, nil, logger.NewNop())

	// Бронирование фиксируется и сбрасывает кеш, пока читатель держит старый снимок
	repo.afterRead = func() {
		repo.afterRead = nil
		repo.bookings = append(repo.bookings, exactBooking(dayD, "10:00", domain.StatusPending))
		cache.invalidate()
	}

	first, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.Empty(t, first.Unavailable)
	assert.Empty(t, cache.data)

	second, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, []types.TimeString{"10:00"}, second.Unavailable)
}

func TestExecute_CacheErrorFallsBackToStore(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{exactBooking(dayD, "12:00", domain.StatusPending)}}
	cache := &fakeCache{err: errors.New("redis down")}
	uc := NewUseCase(repo, cache, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Scope: companyScope(), Date: dayD})
	require.NoError(t, err)
	assert.True(t, resp.Known)
	assert.Equal(t, []types.TimeString{"12:00"}, resp.Unavailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, nil, nil, logger.NewNop())

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"no company", &Request{Date: dayD}},
		{"empty asset", &Request{Scope: domain.BookingScope{CompanyRef: "c", AssetRef: ptr.Ptr("")}, Date: dayD}},
		{"no date", &Request{Scope: companyScope()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestScopedChecker(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{exactBooking(dayD, "15:00", domain.StatusPending)}}
	uc := NewUseCase(repo, nil, nil, logger.NewNop())
	checker := NewScopedChecker(uc, companyScope())

	a := checker.Check(context.Background(), dayD)
	assert.True(t, a.Known)
	assert.True(t, a.IsUnavailable("15:00"))
	assert.False(t, a.IsUnavailable("16:00"))
}
