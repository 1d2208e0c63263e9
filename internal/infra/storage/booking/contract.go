package booking

import "github.com/m04kA/SMC-DroneBookingService/pkg/txmanager"

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
