package contacts

import (
	"context"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// ContactRepository интерфейс репозитория контактов на объекте
type ContactRepository interface {
	ListByCompany(ctx context.Context, companyRef string) ([]*domain.SiteContact, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
