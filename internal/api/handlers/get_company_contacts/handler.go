package get_company_contacts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/contacts"
)

const (
	msgMissingSession = "отсутствует сессия пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/contacts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/contacts - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.GetCompanyContacts(r.Context(), companyID, session)
	if err != nil {
		switch {
		case errors.Is(err, contacts.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/contacts - Access denied: company_id=%s, requester=%s",
				companyID, session.RequesterRef)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /companies/{id}/contacts - Failed to get contacts: company_id=%s, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/contacts - Contacts retrieved successfully: company_id=%s, count=%d",
		companyID, len(result.Contacts))
	handlers.RespondJSON(w, http.StatusOK, result.Contacts)
}
