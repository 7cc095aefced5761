package entities

import (
	"time"

	"equipment-system/pkg/constants"
	"equipment-system/pkg/types"

	"github.com/google/uuid"
)

// MaintenanceRecord — запланированное или выполненное обслуживание.
type MaintenanceRecord struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"company_id"`
	EquipmentID     uuid.UUID  `json:"equipment_id"`
	MaintenanceType string     `json:"maintenance_type"`
	Status          string     `json:"status"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	PerformedBy     *uuid.UUID `json:"performed_by,omitempty"`
	ServiceProvider *string    `json:"service_provider,omitempty"`
	PartsCost       float64    `json:"parts_cost"`
	LaborCost       float64    `json:"labor_cost"`
	TotalCost       float64    `json:"total_cost"`
	Notes           *string    `json:"notes,omitempty"`

	types.BaseEntity
}

// EffectiveStatus — статус для отображения. Просроченность выводится на
// чтении, хранимое поле не мутируется: это убирает гонку между
// периодической проверкой расписания и действием пользователя.
func (m *MaintenanceRecord) EffectiveStatus(now time.Time) string {
	if m.Status == constants.MaintenanceStatusScheduled &&
		m.ScheduledDate != nil &&
		m.ScheduledDate.Before(now.Truncate(24*time.Hour)) {
		return constants.MaintenanceStatusOverdue
	}
	return m.Status
}
