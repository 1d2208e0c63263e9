package get_service_detail

import "github.com/m04kA/SMC-DroneBookingService/internal/domain"

type Catalog interface {
	DetailFor(serviceType domain.ServiceType) (domain.ServiceDetail, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
