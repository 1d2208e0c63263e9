package check_availability

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// Request модель запроса на проверку занятости слотов
type Request struct {
	Scope domain.BookingScope // Область конфликтов: компания или конкретный объект
	Date  time.Time           // Проверяемая дата (без времени)
}

// Response модель ответа с занятостью слотов на дату
type Response struct {
	Date        time.Time          // Проверяемая дата
	Known       bool               // false, если бронирования прочитать не удалось
	Available   []types.TimeString // Свободные слоты в порядке каталога (nil, если занятость неизвестна)
	Unavailable []types.TimeString // Занятые слоты в порядке каталога
	Cached      bool               // Ответ взят из кеша
}
