package contacts

import "errors"

var (
	// ErrAccessDenied возвращается при запросе истории чужой компании
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
