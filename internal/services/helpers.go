package services

import (
	"errors"

	apperrors "equipment-system/pkg/errors"

	"github.com/google/uuid"
)

// notFoundAs переводит сентинел ErrNotFound в доменную 404 с понятным
// клиенту сообщением. Остальные ошибки проходят как есть.
func notFoundAs(err error, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(message)
	}
	return err
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apperrors.NewValidationError("некорректный идентификатор: "+*s, nil)
	}
	return &id, nil
}
