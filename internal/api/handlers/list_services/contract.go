package list_services

import "github.com/m04kA/SMC-DroneBookingService/internal/domain"

type Catalog interface {
	ServicesFor(category domain.AssetCategory) ([]domain.ServiceType, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
