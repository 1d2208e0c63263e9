package draft

import (
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/scheduling"
)

// Draft - незавершенное бронирование одного пользователя.
// Существует только в памяти до успешной отправки.
type Draft struct {
	Asset    domain.AssetRef
	Services *Selection
	Schedule *scheduling.Planner
	Contact  *ContactManager
	Notes    string

	// ForceSlot разрешает отправку на слот, который проверка занятости пометила как занятый
	ForceSlot bool
}

// New создает пустой черновик для объекта
func New(
	asset domain.AssetRef,
	registry SchemaRegistry,
	checker scheduling.AvailabilityChecker,
	history ContactHistory,
	companyRef string,
) *Draft {
	return &Draft{
		Asset:    asset,
		Services: NewSelection(registry),
		Schedule: scheduling.NewPlanner(checker),
		Contact:  NewContactManager(history, companyRef),
	}
}
