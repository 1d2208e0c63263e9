package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-DroneBookingService/internal/usecase/check_availability"
)

const (
	msgMissingSession = "отсутствует сессия пользователя"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	scope   domain.AvailabilityScope
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, scope domain.AvailabilityScope, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		scope:   scope,
		logger:  logger,
	}
}

// Handle GET /api/v1/assets/{assetId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetId"]

	// Компания берется из сессии (через middleware Auth)
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /assets/{id}/available-slots - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /assets/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(h.scope, session.CompanyRef, assetID, dateStr)
	if err != nil {
		h.logger.Warn("GET /assets/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /assets/{id}/available-slots - Invalid parameters: asset_id=%s, error=%v", assetID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /assets/{id}/available-slots - Failed to check availability: asset_id=%s, error=%v",
				assetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(assetID, h.scope, result)

	h.logger.Info("GET /assets/{id}/available-slots - Slots retrieved successfully: asset_id=%s, date=%s, known=%t, unavailable=%d",
		assetID, response.Date, result.Known, len(result.Unavailable))
	handlers.RespondJSON(w, http.StatusOK, response)
}
