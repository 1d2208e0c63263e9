package draft

import (
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// Selection - выбранные услуги черновика и значения их опций
type Selection struct {
	registry SchemaRegistry

	order  []domain.ServiceType
	config domain.ServiceConfiguration
	active domain.ServiceType
}

// NewSelection создает пустой выбор услуг
func NewSelection(registry SchemaRegistry) *Selection {
	return &Selection{
		registry: registry,
		order:    make([]domain.ServiceType, 0),
		config:   make(domain.ServiceConfiguration),
	}
}

// Toggle добавляет услугу в выбор или убирает ее вместе с настройками.
// Добавленная услуга становится активной и получает значения по умолчанию.
// Возвращает true, если после вызова услуга выбрана.
func (s *Selection) Toggle(serviceType domain.ServiceType) bool {
	if s.IsSelected(serviceType) {
		s.remove(serviceType)
		return false
	}

	s.order = append(s.order, serviceType)
	s.config[serviceType] = s.defaults(serviceType)
	s.active = serviceType
	return true
}

func (s *Selection) remove(serviceType domain.ServiceType) {
	for i, st := range s.order {
		if st == serviceType {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	delete(s.config, serviceType)

	if s.active == serviceType {
		s.active = ""
		if len(s.order) > 0 {
			s.active = s.order[len(s.order)-1]
		}
	}
}

// defaults строит начальные значения: первый вариант для Single, пустое множество для Multi.
// Для услуги без схемы настроек нет.
func (s *Selection) defaults(serviceType domain.ServiceType) map[string]domain.OptionValue {
	values := make(map[string]domain.OptionValue)

	configurable, ok := s.configurable(serviceType)
	if !ok {
		return values
	}
	for _, g := range configurable.Groups {
		values[g.Key] = g.DefaultValue()
	}
	return values
}

func (s *Selection) configurable(serviceType domain.ServiceType) (domain.ConfigurableDetail, bool) {
	if s.registry == nil {
		return domain.ConfigurableDetail{}, false
	}
	detail, err := s.registry.DetailFor(serviceType)
	if err != nil {
		return domain.ConfigurableDetail{}, false
	}
	configurable, ok := detail.(domain.ConfigurableDetail)
	return configurable, ok
}

// SetOption заменяет значение Single-группы или переключает value в Multi-группе.
// Для невыбранной услуги, чужой группы или неизвестного варианта ничего не делает.
// Возвращает true, если значение изменено.
func (s *Selection) SetOption(serviceType domain.ServiceType, groupKey, value string) bool {
	values, selected := s.config[serviceType]
	if !selected {
		return false
	}

	configurable, ok := s.configurable(serviceType)
	if !ok {
		return false
	}
	group, ok := configurable.Group(groupKey)
	if !ok || !group.HasChoice(value) {
		return false
	}

	current, ok := values[groupKey]
	if !ok {
		current = group.DefaultValue()
	}

	switch group.Mode {
	case domain.SelectionSingle:
		values[groupKey] = domain.SingleValue(value)
	case domain.SelectionMulti:
		values[groupKey] = current.Toggle(value)
	default:
		return false
	}
	s.active = serviceType
	return true
}

// Option возвращает текущее значение группы
func (s *Selection) Option(serviceType domain.ServiceType, groupKey string) (domain.OptionValue, bool) {
	v, ok := s.config[serviceType][groupKey]
	if !ok {
		return domain.OptionValue{}, false
	}
	return v.Clone(), true
}

// IsComplete проверяет, что у каждой группы схемы есть значение.
// Multi-группа считается заполненной и при пустом множестве.
// Услуга без схемы всегда заполнена.
func (s *Selection) IsComplete(serviceType domain.ServiceType) bool {
	values, selected := s.config[serviceType]
	if !selected {
		return false
	}

	configurable, ok := s.configurable(serviceType)
	if !ok {
		return true
	}
	for _, g := range configurable.Groups {
		v, ok := values[g.Key]
		if !ok {
			return false
		}
		if g.Mode == domain.SelectionSingle && v.Single == "" {
			return false
		}
	}
	return true
}

// IsSelected проверяет, выбрана ли услуга
func (s *Selection) IsSelected(serviceType domain.ServiceType) bool {
	_, ok := s.config[serviceType]
	return ok
}

// Selected возвращает выбранные услуги в порядке выбора
func (s *Selection) Selected() []domain.ServiceType {
	out := make([]domain.ServiceType, len(s.order))
	copy(out, s.order)
	return out
}

// IsEmpty возвращает true, если не выбрано ни одной услуги
func (s *Selection) IsEmpty() bool {
	return len(s.order) == 0
}

// Active возвращает услугу, настройки которой сейчас в фокусе
func (s *Selection) Active() (domain.ServiceType, bool) {
	return s.active, s.active != ""
}

// Focus переводит фокус на выбранную услугу
func (s *Selection) Focus(serviceType domain.ServiceType) bool {
	if !s.IsSelected(serviceType) {
		return false
	}
	s.active = serviceType
	return true
}

// Configuration возвращает копию настроек всех выбранных услуг
func (s *Selection) Configuration() domain.ServiceConfiguration {
	return s.config.Clone()
}
