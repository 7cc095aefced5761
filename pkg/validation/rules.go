package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Верхняя граница денежных полей. Всё, что больше, — опечатка, а не цена.
const MaxMoneyAmount = 99_999_999.99

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("date_format", isDateValid); err != nil {
		return err
	}
	if err := v.RegisterValidation("money", isMoneyValid); err != nil {
		return err
	}
	return nil
}

// isDateValid - проверка формата YYYY-MM-DD
func isDateValid(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true // пустоту отсекает required, где он нужен
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// isMoneyValid - денежное поле: неотрицательное и в разумных пределах
func isMoneyValid(fl validator.FieldLevel) bool {
	val := fl.Field().Float()
	return val >= 0 && val <= MaxMoneyAmount
}
