package get_service_detail

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/catalog"
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceType}
// Незарегистрированная услуга не ошибка: отдается kind = "none" без опций.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := domain.ServiceType(mux.Vars(r)["serviceType"])

	detail, err := h.catalog.DetailFor(serviceType)
	if err != nil {
		if !errors.Is(err, catalog.ErrUnknownServiceType) {
			h.logger.Error("GET /services/{serviceType} - Failed to get detail: service=%s, error=%v", serviceType, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("GET /services/{serviceType} - Unknown service type: %s", serviceType)
		detail = nil
	}

	h.logger.Info("GET /services/{serviceType} - Detail retrieved successfully: service=%s", serviceType)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDetail(serviceType, detail))
}
