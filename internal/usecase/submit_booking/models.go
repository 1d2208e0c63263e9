package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// Warning мягкое предупреждение, не блокирующее отправку
type Warning string

const (
	// WarningAvailabilityUnknown занятость слотов прочитать не удалось
	WarningAvailabilityUnknown Warning = "availability_unknown"
	// WarningSlotUnavailable отправка на слот, отмеченный как занятый
	WarningSlotUnavailable Warning = "slot_unavailable"
	// WarningServiceIncomplete у одной из услуг заполнены не все группы опций
	WarningServiceIncomplete Warning = "service_incomplete"
	// WarningNotificationFailed уведомление не доставлено
	WarningNotificationFailed Warning = "notification_failed"
)

// Request модель запроса на отправку бронирования.
// Воспроизводится через компоненты черновика в порядке полей.
type Request struct {
	Asset     domain.AssetRef  // Объект и его категория
	Services  []ServiceRequest // Выбранные услуги с опциями
	Plan      PlanRequest      // Параметры плана
	Contact   ContactRequest   // Контакт на объекте
	Notes     *string          // Дополнительные заметки (опционально)
	ForceSlot bool             // Отправить даже на слот, отмеченный как занятый
}

// ServiceRequest выбранная услуга и значения групп опций.
// Для Single-группы берется последнее значение, для Multi - множество значений.
type ServiceRequest struct {
	Type    domain.ServiceType
	Options map[string][]string
}

// PlanRequest параметры плана. Поля чужих вариантов игнорируются.
type PlanRequest struct {
	Kind      domain.PlanKind
	Date      *time.Time
	TimeSlot  *types.TimeString
	Tolerance *domain.ToleranceWindow
	TimeOfDay *domain.TimeOfDay
	StartDate *time.Time
	EndDate   *time.Time
	Frequency *domain.Frequency
}

// ContactRequest новый контакт или ссылка на сохраненный.
// Поля, заданные вместе с ExistingID, правят контакт только для этого бронирования.
type ContactRequest struct {
	ExistingID      *string
	Name            *string
	Phone           *string
	Email           *string
	AvailableOnsite *bool
}

// Result результат успешной отправки
type Result struct {
	BookingID string          // ID созданного бронирования
	Booking   *domain.Booking // Сохраненное бронирование
	Warnings  []Warning       // Мягкие предупреждения
}

// HasWarning проверяет наличие предупреждения
func (r *Result) HasWarning(w Warning) bool {
	for _, got := range r.Warnings {
		if got == w {
			return true
		}
	}
	return false
}
