package get_company_contacts

import (
	"context"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/contacts"
)

type ContactService interface {
	GetCompanyContacts(ctx context.Context, companyRef string, session domain.Session) (*contacts.ContactListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
