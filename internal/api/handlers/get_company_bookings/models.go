package get_company_bookings

import (
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	companyID string,
	session domain.Session,
	assetIDStr string,
	statusStr string,
	dateStr string,
) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{
		Session:    session,
		CompanyRef: companyID,
	}

	if assetIDStr != "" {
		req.AssetRef = &assetIDStr
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
