package utils

import (
	"encoding/json"
	"fmt"

	apperrors "equipment-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// BindStrict декодирует JSON-тело запроса, отклоняя неизвестные поля.
// Ни одно состояние не трогается до успешного разбора.
func BindStrict(ctx echo.Context, target interface{}) error {
	decoder := json.NewDecoder(ctx.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.NewValidationError(
			fmt.Sprintf("неверный формат данных в теле запроса: %v", err), nil)
	}
	return nil
}
