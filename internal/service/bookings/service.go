package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DroneBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Бронирование видно только сотрудникам компании, которая его создала.
func (s *Service) GetByID(ctx context.Context, id string, session domain.Session) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for requester=%s", id, session.RequesterRef)

	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CompanyRef != session.CompanyRef {
		s.logger.Warn("GetByID: access denied for company=%s to booking id=%s", session.CompanyRef, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetCompanyBookings получает бронирования компании.
// Фильтр по дате возвращает только точные планы на эту дату, отсортированные по слоту.
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCompanyBookings: fetching bookings for company=%s, requester=%s",
		req.CompanyRef, req.Session.RequesterRef)
	if req.AssetRef != nil {
		logMsg += fmt.Sprintf(", asset=%s", *req.AssetRef)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.CompanyRef != req.Session.CompanyRef {
		s.logger.Warn("GetCompanyBookings: company=%s cannot read bookings of company=%s",
			req.Session.CompanyRef, req.CompanyRef)
		return nil, ErrAccessDenied
	}

	scope, err := req.ToDomainScope()
	if err != nil {
		s.logger.Warn("GetCompanyBookings: invalid filter for company=%s: %v", req.CompanyRef, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}
	if scope.ExactDate != nil {
		scope.ExactDate = ptr.Ptr(domain.DateOf(*scope.ExactDate))
	}

	bookings, err := s.bookingRepo.ListByScope(ctx, scope)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%s: %v", req.CompanyRef, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: successfully fetched %d bookings for company=%s", len(bookings), req.CompanyRef)
	return models.FromDomainBookingList(bookings), nil
}
