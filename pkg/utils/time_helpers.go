package utils

import (
	"time"

	apperrors "equipment-system/pkg/errors"
)

const DateLayout = "2006-01-02"

// ParseDate разбирает дату формата YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("дата должна быть в формате YYYY-MM-DD: "+s, nil)
	}
	return t, nil
}

// ParseDatePtr — то же самое для необязательного поля.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
