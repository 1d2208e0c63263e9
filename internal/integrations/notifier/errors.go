package notifier

import "errors"

var (
	// ErrNotificationFailed возвращается, когда уведомление не доставлено
	ErrNotificationFailed = errors.New("notifier: notification failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")
)
