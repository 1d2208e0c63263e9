package availability

import "errors"

var (
	// ErrCacheUnavailable возвращается, когда Redis недоступен
	ErrCacheUnavailable = errors.New("availability.cache: redis unavailable")

	// ErrCorruptEntry возвращается, если запись в кеше не удалось разобрать
	ErrCorruptEntry = errors.New("availability.cache: corrupt entry")

	// ErrStaleEntry снимок занятости устарел: дату сбросили после начала чтения
	ErrStaleEntry = errors.New("availability.cache: stale entry")
)
