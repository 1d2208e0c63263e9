package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Scope.CompanyRef == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}

	if req.Scope.AssetRef != nil && *req.Scope.AssetRef == "" {
		return fmt.Errorf("%w: asset must not be empty", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
