package entities

import (
	"time"

	"equipment-system/pkg/types"

	"github.com/google/uuid"
)

// Assignment — выдача единицы оборудования на объект и/или работнику на
// интервал [start_date, end_date). Отсутствующий end_date означает
// открытую выдачу: для проверки пересечений она тянется в бесконечность.
type Assignment struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	EquipmentID uuid.UUID  `json:"equipment_id"`
	JobID       *uuid.UUID `json:"job_id,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
	HoursUsed   float64    `json:"hours_used"`
	Notes       *string    `json:"notes,omitempty"`

	types.BaseEntity
}

// Overlaps — пересечение интервалов двух назначений: ни одно не
// предшествует целиком другому.
func (a *Assignment) Overlaps(start time.Time, end *time.Time) bool {
	if a.EndDate != nil && !a.EndDate.After(start) {
		return false
	}
	if end != nil && !end.After(a.StartDate) {
		return false
	}
	return true
}
