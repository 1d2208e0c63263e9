package draft

import "errors"

var (
	// ErrContactNotFound возвращается, если контакта нет в истории компании
	ErrContactNotFound = errors.New("draft: contact not found")

	// ErrUnknownContactField возвращается при обновлении неизвестного поля контакта
	ErrUnknownContactField = errors.New("draft: unknown contact field")

	// ErrInvalidFieldValue возвращается, если значение поля не удалось разобрать
	ErrInvalidFieldValue = errors.New("draft: invalid field value")

	// ErrContactHistoryUnavailable возвращается при ошибке чтения истории контактов
	ErrContactHistoryUnavailable = errors.New("draft: contact history unavailable")
)
