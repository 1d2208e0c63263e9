package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// AvailabilityChecker возвращает занятость слотов на дату.
// Ошибку чтения реализация выражает через Availability.Known = false.
type AvailabilityChecker interface {
	Check(ctx context.Context, date time.Time) domain.Availability
}
