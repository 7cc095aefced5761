package errors

import (
	"fmt"
	"net/http"
)

var (
	// Авторизация / контекст запроса
	ErrEmptyAuthHeader     = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader   = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidToken        = fmt.Errorf("недопустимый токен")
	ErrTokenExpired        = fmt.Errorf("срок действия токена истёк")
	ErrCompanyIDNotFound   = fmt.Errorf("CompanyID не найден в контексте запроса")
	ErrUserIDNotFound      = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrConflict   = fmt.Errorf("операция нарушает бизнес-правило")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// HttpError — структурированная ошибка, которую контроллеры отдают наружу.
// Code определяет HTTP-статус, Message — текст для клиента,
// Err — техническая причина (только в логи), Details — данные для body.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// Таксономия ошибок ядра: валидация / конфликт / не найдено / транзакция.

// NewValidationError — структурно некорректный ввод. Ничего не записано.
func NewValidationError(message string, details interface{}) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest, Details: details}
}

// NewConflictError — нарушение бизнес-правила (пересечение назначений,
// недопустимый переход статуса и т.п.).
func NewConflictError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Err: ErrConflict}
}

// NewNotFoundError — запись не существует в рамках компании вызывающего.
func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewTransactionError — хранилище не смогло закоммитить атомарную запись.
// Вызывающий может повторить операцию целиком.
func NewTransactionError(err error) *HttpError {
	return &HttpError{Code: http.StatusInternalServerError, Message: "не удалось выполнить транзакцию, повторите операцию", Err: err}
}
