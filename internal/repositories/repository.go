package repositories

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Конвертация null-типов из сканов БД в указатели доменных сущностей.

func nullStringToPtr(v null.String) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTimeToPtr(v null.Time) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullIntToPtr(v null.Int) *int {
	if !v.Valid {
		return nil
	}
	i := v.Int
	return &i
}

func nullUUIDToPtr(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	u := v.UUID
	return &u
}

func ptrToNullString(p *string) null.String {
	if p == nil {
		return null.String{}
	}
	return null.StringFrom(*p)
}

func ptrToNullTime(p *time.Time) null.Time {
	if p == nil {
		return null.Time{}
	}
	return null.TimeFrom(*p)
}

func ptrToNullInt(p *int) null.Int {
	if p == nil {
		return null.Int{}
	}
	return null.IntFrom(*p)
}

func ptrToNullUUID(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}
