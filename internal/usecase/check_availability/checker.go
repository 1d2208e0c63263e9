package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// ScopedChecker привязывает проверку к одной области, чтобы планировщик черновика
// спрашивал занятость только по дате
type ScopedChecker struct {
	uc    *UseCase
	scope domain.BookingScope
}

// NewScopedChecker создает проверку для области
func NewScopedChecker(uc *UseCase, scope domain.BookingScope) *ScopedChecker {
	return &ScopedChecker{uc: uc, scope: scope}
}

// Check возвращает занятость слотов области на дату
func (c *ScopedChecker) Check(ctx context.Context, date time.Time) domain.Availability {
	return c.uc.Check(ctx, c.scope, date)
}
