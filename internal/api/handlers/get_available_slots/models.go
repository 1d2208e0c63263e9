package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-DroneBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model.
// При known = false занятость прочитать не удалось и все слоты можно выбирать.
type AvailableSlotsResponse struct {
	Date        string   `json:"date"`
	AssetID     string   `json:"assetId"`
	Scope       string   `json:"scope"`
	Known       bool     `json:"known"`
	Slots       []string `json:"slots"`
	Available   []string `json:"available"`
	Unavailable []string `json:"unavailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(assetID string, scope domain.AvailabilityScope, resp *checkAvailability.Response) *AvailableSlotsResponse {
	available := resp.Available
	if !resp.Known {
		available = domain.SlotCatalog()
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		AssetID:     assetID,
		Scope:       string(scope),
		Known:       resp.Known,
		Slots:       toStrings(domain.SlotCatalog()),
		Available:   toStrings(available),
		Unavailable: toStrings(resp.Unavailable),
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(scope domain.AvailabilityScope, companyRef, assetID, dateStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		Scope: scope.For(companyRef, assetID),
		Date:  date,
	}, nil
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
