package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/draft"
	contactRepo "github.com/m04kA/SMC-DroneBookingService/internal/infra/storage/contact"
)

// scopedChecker отдает планировщику черновика занятость только по дате
type scopedChecker struct {
	availability AvailabilityService
	scope        domain.BookingScope
}

func (c *scopedChecker) Check(ctx context.Context, date time.Time) domain.Availability {
	return c.availability.Check(ctx, c.scope, date)
}

// contactHistory переводит отсутствие контакта в хранилище в ошибку черновика
type contactHistory struct {
	repo ContactRepository
}

func (h *contactHistory) GetByID(ctx context.Context, companyRef, contactID string) (*domain.SiteContact, error) {
	c, err := h.repo.GetByID(ctx, companyRef, contactID)
	if err != nil {
		if errors.Is(err, contactRepo.ErrContactNotFound) {
			return nil, fmt.Errorf("%w: %s", draft.ErrContactNotFound, contactID)
		}
		return nil, err
	}
	return c, nil
}
