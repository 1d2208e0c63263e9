package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingSession   = "отсутствует сессия пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Получаем сессию из контекста (через middleware Auth)
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	// Получаем бронирование (сервис сам проверит права доступа)
	booking, err := h.service.GetByID(r.Context(), bookingID, session)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, company_id=%s", bookingID, session.CompanyRef)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s, requester=%s",
		bookingID, session.RequesterRef)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
