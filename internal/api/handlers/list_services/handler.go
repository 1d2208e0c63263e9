package list_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/catalog"
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

const msgUnknownCategory = "неизвестная категория объекта"

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

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Category string   `json:"category"`
	Services []string `json:"services"`
}

// Handle GET /api/v1/categories/{category}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := domain.AssetCategory(mux.Vars(r)["category"])

	services, err := h.catalog.ServicesFor(category)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownAssetCategory):
			h.logger.Warn("GET /categories/{category}/services - Unknown category: %s", category)
			handlers.RespondNotFound(w, msgUnknownCategory)

		default:
			h.logger.Error("GET /categories/{category}/services - Failed to list services: category=%s, error=%v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := ServicesResponse{
		Category: string(category),
		Services: make([]string, len(services)),
	}
	for i, s := range services {
		resp.Services[i] = string(s)
	}

	h.logger.Info("GET /categories/{category}/services - Services retrieved successfully: category=%s, count=%d",
		category, len(services))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
