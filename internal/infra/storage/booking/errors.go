package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncode возвращается, если бронирование не удалось разложить по колонкам
	ErrEncode = errors.New("booking.repository: failed to encode booking")

	// ErrDecode возвращается, если строку не удалось собрать в бронирование
	ErrDecode = errors.New("booking.repository: failed to decode booking")
)
