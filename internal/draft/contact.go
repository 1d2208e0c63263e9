package draft

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
)

// ContactField - редактируемое поле контакта на объекте
type ContactField string

const (
	ContactFieldName            ContactField = "name"
	ContactFieldPhone           ContactField = "phone"
	ContactFieldEmail           ContactField = "email"
	ContactFieldAvailableOnsite ContactField = "available_onsite"
)

// ContactManager собирает контакт черновика: новый или выбранный из истории компании.
// Правки выбранного контакта остаются локальными для бронирования
// и не перезаписывают сохраненную запись.
type ContactManager struct {
	history    ContactHistory
	companyRef string

	contact domain.SiteContact
	reused  bool
}

// NewContactManager создает менеджер с пустым новым контактом
func NewContactManager(history ContactHistory, companyRef string) *ContactManager {
	m := &ContactManager{
		history:    history,
		companyRef: companyRef,
	}
	m.StartNew()
	return m
}

// SelectExisting копирует сохраненный контакт компании в черновик и помечает его как повторно используемый
func (m *ContactManager) SelectExisting(ctx context.Context, contactID string) error {
	if m.history == nil {
		return fmt.Errorf("%w: %s", ErrContactNotFound, contactID)
	}

	stored, err := m.history.GetByID(ctx, m.companyRef, contactID)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrContactHistoryUnavailable, err)
	}
	if stored == nil {
		return fmt.Errorf("%w: %s", ErrContactNotFound, contactID)
	}

	m.contact = *stored
	if stored.Email != nil {
		m.contact.Email = ptr.Ptr(*stored.Email)
	}
	m.reused = true
	return nil
}

// StartNew сбрасывает черновик к пустому новому контакту
func (m *ContactManager) StartNew() {
	m.contact = domain.SiteContact{
		CompanyRef:      m.companyRef,
		AvailableOnsite: true,
	}
	m.reused = false
}

// Update изменяет одно поле черновика контакта
func (m *ContactManager) Update(field ContactField, value string) error {
	switch field {
	case ContactFieldName:
		m.contact.Name = value
	case ContactFieldPhone:
		m.contact.Phone = value
	case ContactFieldEmail:
		if strings.TrimSpace(value) == "" {
			m.contact.Email = nil
		} else {
			m.contact.Email = ptr.Ptr(value)
		}
	case ContactFieldAvailableOnsite:
		onsite, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFieldValue, field, value)
		}
		m.contact.AvailableOnsite = onsite
	default:
		return fmt.Errorf("%w: %s", ErrUnknownContactField, field)
	}
	return nil
}

// IsValid проверяет, что имя и телефон не пустые после обрезки пробелов
func (m *ContactManager) IsValid() bool {
	return m.contact.IsValid()
}

// IsReused возвращает true для контакта, выбранного из истории
func (m *ContactManager) IsReused() bool {
	return m.reused
}

// Contact возвращает копию текущего черновика контакта
func (m *ContactManager) Contact() domain.SiteContact {
	c := m.contact
	if c.Email != nil {
		c.Email = ptr.Ptr(*c.Email)
	}
	return c
}
