package dto

import (
	"time"

	"equipment-system/internal/entities"
	"equipment-system/pkg/utils"
)

type CreateMaintenanceDTO struct {
	EquipmentID     string  `json:"equipment_id" validate:"required,uuid4"`
	MaintenanceType string  `json:"maintenance_type" validate:"required,oneof=preventive corrective inspection calibration"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress"`
	Title           string  `json:"title" validate:"required,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ScheduledDate   *string `json:"scheduled_date,omitempty" validate:"omitempty,date_format"`
	PerformedBy     *string `json:"performed_by,omitempty" validate:"omitempty,uuid4"`
	ServiceProvider *string `json:"service_provider,omitempty" validate:"omitempty,max=255"`
	PartsCost       float64 `json:"parts_cost,omitempty" validate:"money"`
	LaborCost       float64 `json:"labor_cost,omitempty" validate:"money"`
	TotalCost       float64 `json:"total_cost,omitempty" validate:"money"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateMaintenanceDTO struct {
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	ScheduledDate   *string  `json:"scheduled_date,omitempty" validate:"omitempty,date_format"`
	CompletedDate   *string  `json:"completed_date,omitempty" validate:"omitempty,date_format"`
	PerformedBy     *string  `json:"performed_by,omitempty" validate:"omitempty,uuid4"`
	ServiceProvider *string  `json:"service_provider,omitempty" validate:"omitempty,max=255"`
	PartsCost       *float64 `json:"parts_cost,omitempty" validate:"omitempty,money"`
	LaborCost       *float64 `json:"labor_cost,omitempty" validate:"omitempty,money"`
	TotalCost       *float64 `json:"total_cost,omitempty" validate:"omitempty,money"`
	Notes           *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type MaintenanceDTO struct {
	ID              string  `json:"id"`
	EquipmentID     string  `json:"equipment_id"`
	MaintenanceType string  `json:"maintenance_type"`
	Status          string  `json:"status"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	ScheduledDate   *string `json:"scheduled_date,omitempty"`
	CompletedDate   *string `json:"completed_date,omitempty"`
	PerformedBy     *string `json:"performed_by,omitempty"`
	ServiceProvider *string `json:"service_provider,omitempty"`
	PartsCost       float64 `json:"parts_cost"`
	LaborCost       float64 `json:"labor_cost"`
	TotalCost       float64 `json:"total_cost"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// MaintenanceToDTO отдаёт производный статус: запись со статусом
// scheduled и датой в прошлом показывается как overdue, хранимое
// значение при этом не меняется.
func MaintenanceToDTO(m *entities.MaintenanceRecord, now time.Time) *MaintenanceDTO {
	out := &MaintenanceDTO{
		ID:              m.ID.String(),
		EquipmentID:     m.EquipmentID.String(),
		MaintenanceType: m.MaintenanceType,
		Status:          m.EffectiveStatus(now),
		Title:           m.Title,
		Description:     m.Description,
		ScheduledDate:   utils.FormatDatePtr(m.ScheduledDate),
		CompletedDate:   utils.FormatDatePtr(m.CompletedDate),
		ServiceProvider: m.ServiceProvider,
		PartsCost:       m.PartsCost,
		LaborCost:       m.LaborCost,
		TotalCost:       m.TotalCost,
		Notes:           m.Notes,
	}
	if m.PerformedBy != nil {
		out.PerformedBy = utils.ToPtr(m.PerformedBy.String())
	}
	if m.CreatedAt != nil {
		out.CreatedAt = m.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if m.UpdatedAt != nil {
		out.UpdatedAt = m.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func MaintenanceListToDTO(items []entities.MaintenanceRecord, now time.Time) []MaintenanceDTO {
	out := make([]MaintenanceDTO, 0, len(items))
	for i := range items {
		out = append(out, *MaintenanceToDTO(&items[i], now))
	}
	return out
}
