package get_company_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings"
)

const (
	msgMissingSession = "отсутствует сессия пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/companies/{companyId}/bookings
// Query params: assetId, status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	// Получаем сессию из контекста (через middleware Auth)
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(companyID, session, query.Get("assetId"), query.Get("status"), query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /companies/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCompanyBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/bookings - Access denied: company_id=%s, requester=%s",
				companyID, session.RequesterRef)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/bookings - Invalid filter: company_id=%s, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/bookings - Failed to get bookings: company_id=%s, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/bookings - Bookings retrieved successfully: company_id=%s, count=%d",
		companyID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
