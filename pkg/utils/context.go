package utils

import (
	"context"

	"equipment-system/pkg/contextkeys"
	apperrors "equipment-system/pkg/errors"

	"github.com/google/uuid"
)

// CompanyIDFromContext достаёт идентификатор компании, положенный
// auth-middleware. Каждый запрос ядра обязан быть ограничен компанией.
func CompanyIDFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.CompanyIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, apperrors.ErrCompanyIDNotFound
	}
	return id, nil
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFound
	}
	return id, nil
}
