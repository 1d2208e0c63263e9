package draft

import (
	"context"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// SchemaRegistry отдает схему опций услуги
type SchemaRegistry interface {
	DetailFor(serviceType domain.ServiceType) (domain.ServiceDetail, error)
}

// ContactHistory отдает ранее сохраненные контакты компании.
// Отсутствие контакта сообщается через ErrContactNotFound.
type ContactHistory interface {
	GetByID(ctx context.Context, companyRef, contactID string) (*domain.SiteContact, error)
}
