package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("create_booking: invalid date format")

	// ErrInvalidTime возвращается при некорректном формате слота
	ErrInvalidTime = errors.New("create_booking: invalid time format")
)
