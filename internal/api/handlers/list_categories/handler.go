package list_categories

import (
	"net/http"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
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

// CategoriesResponse HTTP response model
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Handle GET /api/v1/categories
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories()

	resp := CategoriesResponse{Categories: make([]string, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = string(c)
	}

	h.logger.Info("GET /categories - Categories retrieved successfully: count=%d", len(categories))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
