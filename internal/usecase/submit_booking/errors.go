package submit_booking

import (
	"errors"

	"github.com/m04kA/SMC-DroneBookingService/internal/scheduling"
)

var (
	// ErrNoServiceSelected возвращается, если в черновике нет ни одной услуги
	ErrNoServiceSelected = errors.New("submit_booking: no service selected")

	// ErrIncompleteSchedule возвращается, если план не прошел валидацию.
	// Первое невыполненное правило обернуто вместе с ним.
	ErrIncompleteSchedule = scheduling.ErrIncompleteSchedule

	// ErrInvalidContact возвращается, если у контакта пустое имя или телефон
	ErrInvalidContact = errors.New("submit_booking: invalid site contact")

	// ErrNotesTooLong возвращается, если заметки длиннее допустимого
	ErrNotesTooLong = errors.New("submit_booking: notes too long")

	// ErrNotAuthenticated возвращается, если в контексте нет сессии
	ErrNotAuthenticated = errors.New("submit_booking: not authenticated")

	// ErrPersistenceFailure возвращается, если бронирование не удалось сохранить
	ErrPersistenceFailure = errors.New("submit_booking: persistence failure")

	// ErrServiceNotEligible возвращается, если услуга недоступна для категории объекта
	ErrServiceNotEligible = errors.New("submit_booking: service not eligible for asset category")

	// ErrContactNotFound возвращается, если выбранного контакта нет в истории компании
	ErrContactNotFound = errors.New("submit_booking: contact not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
