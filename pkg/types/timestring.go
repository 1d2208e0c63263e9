package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout     = "15:04"
	minutesPerDay  = 24 * 60
	secondsLayout  = "15:04:05"
	maxLayoutChars = len(secondsLayout)
)

var (
	// ErrInvalidFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time string out of day bounds")
)

// TimeString время суток в формате "HH:MM" без даты и часового пояса.
// Пустое значение означает "не задано".
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" (или "HH:MM:SS", как её отдаёт Postgres)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxLayoutChars {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	layout := timeLayout
	if len(s) == len(secondsLayout) {
		layout = secondsLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return NewTimeString(t), nil
}

// MustTimeString паникует при некорректном формате. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	return t.minutes()
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.minutes()
	if err != nil {
		return "", err
	}

	total := m + n
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrOutOfDay, t, n)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore сравнивает два времени (некорректные значения считаются равными нулю)
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.minutes()
	b, _ := other.minutes()
	return a < b
}

// IsAfter сравнивает два времени
func (t TimeString) IsAfter(other TimeString) bool {
	a, _ := t.minutes()
	b, _ := other.minutes()
	return a > b
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidFormat, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
