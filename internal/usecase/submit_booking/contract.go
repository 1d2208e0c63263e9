package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

// ContactRepository интерфейс репозитория контактов на объекте
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.SiteContact) error
	GetByID(ctx context.Context, companyRef, id string) (*domain.SiteContact, error)
}

// Catalog справочник услуг и схем их опций
type Catalog interface {
	DetailFor(serviceType domain.ServiceType) (domain.ServiceDetail, error)
	IsEligible(category domain.AssetCategory, serviceType domain.ServiceType) bool
}

// AvailabilityService проверка занятости слотов области на дату
type AvailabilityService interface {
	Check(ctx context.Context, scope domain.BookingScope, date time.Time) domain.Availability
}

// AvailabilityCache сброс закешированной занятости после записи
type AvailabilityCache interface {
	Invalidate(ctx context.Context, companyRef, assetRef string, date time.Time) error
}

// SessionProvider отдает личность отправителя из контекста запроса
type SessionProvider interface {
	Session(ctx context.Context) (domain.Session, bool)
}

// Notifier отправитель уведомлений о новых бронированиях
type Notifier interface {
	Notify(ctx context.Context, bookingID string, summary notifier.Summary) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учета отправок и уведомлений
type Metrics interface {
	ObserveSubmission(result string)
	ObserveNotification(delivered bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
