package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListByScope получает бронирования, видимые в области (компания или объект)
	ListByScope(ctx context.Context, scope domain.BookingScope) ([]*domain.Booking, error)
}

// AvailabilityCache кеш занятости слотов по области и дате.
// Хранит только известную занятость.
type AvailabilityCache interface {
	Get(ctx context.Context, scope domain.BookingScope, date time.Time) (*domain.Availability, error)
	// Generation возвращает поколение даты; сброс даты его увеличивает
	Generation(ctx context.Context, scope domain.BookingScope, date time.Time) (int64, error)
	// Set сохраняет снимок, только если поколение не изменилось
	Set(ctx context.Context, scope domain.BookingScope, availability domain.Availability, generation int64) error
}

// Metrics интерфейс для учета исходов проверки
type Metrics interface {
	ObserveAvailability(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
