package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// Catalog - справочник категорий объектов, доступных услуг и схем их опций.
// После загрузки только читается, поэтому безопасен для конкурентного использования.
type Catalog struct {
	categories []domain.AssetCategory
	byCategory map[domain.AssetCategory][]domain.ServiceType
	details    map[domain.ServiceType]domain.ServiceDetail
}

// Categories возвращает категории объектов в порядке объявления
func (c *Catalog) Categories() []domain.AssetCategory {
	out := make([]domain.AssetCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

// ServicesFor возвращает упорядоченный список услуг для категории объекта
func (c *Catalog) ServicesFor(category domain.AssetCategory) ([]domain.ServiceType, error) {
	services, ok := c.byCategory[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAssetCategory, category)
	}

	out := make([]domain.ServiceType, len(services))
	copy(out, services)
	return out, nil
}

// IsEligible проверяет, доступна ли услуга для категории объекта
func (c *Catalog) IsEligible(category domain.AssetCategory, serviceType domain.ServiceType) bool {
	for _, st := range c.byCategory[category] {
		if st == serviceType {
			return true
		}
	}
	return false
}

// DetailFor возвращает описание услуги.
// Для незарегистрированного типа возвращается ErrUnknownServiceType.
func (c *Catalog) DetailFor(serviceType domain.ServiceType) (domain.ServiceDetail, error) {
	detail, ok := c.details[serviceType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownServiceType, serviceType)
	}
	return detail, nil
}

// IsRegistered проверяет, есть ли у типа услуги схема
func (c *Catalog) IsRegistered(serviceType domain.ServiceType) bool {
	_, ok := c.details[serviceType]
	return ok
}
