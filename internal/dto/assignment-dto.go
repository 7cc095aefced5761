package dto

import (
	"equipment-system/internal/entities"
	"equipment-system/pkg/utils"
)

type CreateAssignmentDTO struct {
	EquipmentID string  `json:"equipment_id" validate:"required,uuid4"`
	JobID       *string `json:"job_id,omitempty" validate:"omitempty,uuid4"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid4"`
	StartDate   string  `json:"start_date" validate:"required,date_format"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,date_format"`
	HoursUsed   float64 `json:"hours_used,omitempty" validate:"gte=0"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateAssignmentDTO — частичный патч: мутируются только присланные
// поля. После completed/cancelled допускаются только корректирующие
// правки hours_used и notes (контролируется сервисом).
type UpdateAssignmentDTO struct {
	Status    *string  `json:"status,omitempty" validate:"omitempty,oneof=active completed cancelled"`
	StartDate *string  `json:"start_date,omitempty" validate:"omitempty,date_format"`
	EndDate   *string  `json:"end_date,omitempty" validate:"omitempty,date_format"`
	HoursUsed *float64 `json:"hours_used,omitempty" validate:"omitempty,gte=0"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type AssignmentDTO struct {
	ID          string  `json:"id"`
	EquipmentID string  `json:"equipment_id"`
	JobID       *string `json:"job_id,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Status      string  `json:"status"`
	HoursUsed   float64 `json:"hours_used"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

func AssignmentToDTO(a *entities.Assignment) *AssignmentDTO {
	out := &AssignmentDTO{
		ID:          a.ID.String(),
		EquipmentID: a.EquipmentID.String(),
		StartDate:   utils.FormatDate(a.StartDate),
		EndDate:     utils.FormatDatePtr(a.EndDate),
		Status:      a.Status,
		HoursUsed:   a.HoursUsed,
		Notes:       a.Notes,
	}
	if a.JobID != nil {
		out.JobID = utils.ToPtr(a.JobID.String())
	}
	if a.AssignedTo != nil {
		out.AssignedTo = utils.ToPtr(a.AssignedTo.String())
	}
	if a.CreatedAt != nil {
		out.CreatedAt = a.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if a.UpdatedAt != nil {
		out.UpdatedAt = a.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func AssignmentListToDTO(items []entities.Assignment) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(items))
	for i := range items {
		out = append(out, *AssignmentToDTO(&items[i]))
	}
	return out
}
