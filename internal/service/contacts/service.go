package contacts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings/models"
)

// Service сервис истории контактов компании
type Service struct {
	contactRepo ContactRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса контактов
func NewService(contactRepo ContactRepository, logger Logger) *Service {
	return &Service{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// ContactListResponse ответ со списком контактов
type ContactListResponse struct {
	Contacts []models.ContactResponse `json:"contacts"`
}

// GetCompanyContacts возвращает ранее сохраненные контакты компании для повторного выбора
func (s *Service) GetCompanyContacts(ctx context.Context, companyRef string, session domain.Session) (*ContactListResponse, error) {
	s.logger.Info("GetCompanyContacts: fetching contacts for company=%s", companyRef)

	if companyRef != session.CompanyRef {
		s.logger.Warn("GetCompanyContacts: company=%s cannot read contacts of company=%s", session.CompanyRef, companyRef)
		return nil, ErrAccessDenied
	}

	contacts, err := s.contactRepo.ListByCompany(ctx, companyRef)
	if err != nil {
		s.logger.Error("GetCompanyContacts: repository error for company=%s: %v", companyRef, err)
		return nil, fmt.Errorf("%w: GetCompanyContacts - repository error: %v", ErrInternal, err)
	}

	resp := &ContactListResponse{Contacts: make([]models.ContactResponse, 0, len(contacts))}
	for _, c := range contacts {
		if c != nil {
			resp.Contacts = append(resp.Contacts, models.FromDomainContact(*c))
		}
	}

	s.logger.Info("GetCompanyContacts: successfully fetched %d contacts for company=%s", len(resp.Contacts), companyRef)
	return resp, nil
}
