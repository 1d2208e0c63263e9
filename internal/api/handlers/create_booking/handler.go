package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/scheduling"
	submitBooking "github.com/m04kA/SMC-DroneBookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени слота, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNoServiceSelected  = "не выбрано ни одной услуги"
	msgIncompleteSchedule = "план съемки заполнен не полностью"
	msgSlotUnavailable    = "выбранный слот уже занят"
	msgInvalidContact     = "у контакта на объекте должны быть имя и телефон"
	msgNotesTooLong       = "заметки длиннее 500 символов"
	msgNotAuthenticated   = "требуется авторизация"
	msgServiceNotEligible = "услуга недоступна для категории объекта"
	msgContactNotFound    = "контакт не найден"
	msgPersistenceFailure = "не удалось сохранить бронирование, повторите попытку"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и слота)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, ErrInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: asset_id=%s, error=%v", req.AssetID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrNotAuthenticated):
			h.logger.Warn("POST /bookings - Not authenticated: asset_id=%s", req.AssetID)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)

		case errors.Is(err, submitBooking.ErrNoServiceSelected):
			h.logger.Warn("POST /bookings - No service selected: asset_id=%s", req.AssetID)
			handlers.RespondUnprocessable(w, msgNoServiceSelected)

		case errors.Is(err, scheduling.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: asset_id=%s", req.AssetID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, submitBooking.ErrIncompleteSchedule):
			h.logger.Warn("POST /bookings - Incomplete schedule: asset_id=%s, error=%v", req.AssetID, err)
			handlers.RespondUnprocessable(w, msgIncompleteSchedule+": "+scheduleReason(err))

		case errors.Is(err, submitBooking.ErrInvalidContact):
			h.logger.Warn("POST /bookings - Invalid contact: asset_id=%s", req.AssetID)
			handlers.RespondUnprocessable(w, msgInvalidContact)

		case errors.Is(err, submitBooking.ErrNotesTooLong):
			h.logger.Warn("POST /bookings - Notes too long: asset_id=%s", req.AssetID)
			handlers.RespondUnprocessable(w, msgNotesTooLong)

		case errors.Is(err, submitBooking.ErrServiceNotEligible):
			h.logger.Warn("POST /bookings - Service not eligible: asset_id=%s, error=%v", req.AssetID, err)
			handlers.RespondUnprocessable(w, msgServiceNotEligible)

		case errors.Is(err, submitBooking.ErrContactNotFound):
			h.logger.Warn("POST /bookings - Contact not found: asset_id=%s", req.AssetID)
			handlers.RespondNotFound(w, msgContactNotFound)

		case errors.Is(err, submitBooking.ErrPersistenceFailure):
			h.logger.Error("POST /bookings - Persistence failure: asset_id=%s, error=%v", req.AssetID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPersistenceFailure)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: asset_id=%s, error=%v", req.AssetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResult(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, asset_id=%s, warnings=%v",
		result.BookingID, req.AssetID, response.Warnings)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// scheduleReason возвращает машиночитаемую причину незаполненного плана
func scheduleReason(err error) string {
	reasons := []struct {
		err  error
		code string
	}{
		{scheduling.ErrDateRequired, "date_required"},
		{scheduling.ErrDateInPast, "date_in_past"},
		{scheduling.ErrTimeSlotRequired, "time_slot_required"},
		{scheduling.ErrUnknownTimeSlot, "unknown_time_slot"},
		{scheduling.ErrInvalidTolerance, "invalid_tolerance"},
		{scheduling.ErrInvalidTimeOfDay, "invalid_time_of_day"},
		{scheduling.ErrStartDateRequired, "start_date_required"},
		{scheduling.ErrStartDateInPast, "start_date_in_past"},
		{scheduling.ErrEndDateRequired, "end_date_required"},
		{scheduling.ErrEndBeforeStart, "end_before_start"},
		{scheduling.ErrRangeTooLong, "range_too_long"},
		{scheduling.ErrFrequencyRequired, "frequency_required"},
		{scheduling.ErrInvalidFrequency, "invalid_frequency"},
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "unknown"
}
