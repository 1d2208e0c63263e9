package submit_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Asset.ID == "" {
		return fmt.Errorf("%w: asset is required", ErrInvalidInput)
	}

	if req.Asset.Category == "" {
		return fmt.Errorf("%w: asset category is required", ErrInvalidInput)
	}

	if req.Plan.Kind != "" && !req.Plan.Kind.IsValid() {
		return fmt.Errorf("%w: unknown plan kind %q", ErrInvalidInput, req.Plan.Kind)
	}

	if req.Plan.TimeSlot != nil {
		if err := req.Plan.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateNotes проверяет длину заметок в символах без крайних пробелов,
// в том виде, в каком они будут сохранены
func validateNotes(notes string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(notes)); n > domain.MaxNotesLength {
		return fmt.Errorf("%w: %d characters, max %d", ErrNotesTooLong, n, domain.MaxNotesLength)
	}
	return nil
}

// uniqueValues убирает повторы, сохраняя порядок
func uniqueValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
