package list_categories

import "github.com/m04kA/SMC-DroneBookingService/internal/domain"

type Catalog interface {
	Categories() []domain.AssetCategory
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
