package dto

import (
	"equipment-system/internal/entities"
	"equipment-system/pkg/utils"
)

type ChecklistItemDTO struct {
	Item    string `json:"item" validate:"required,max=500"`
	Passed  bool   `json:"passed"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type CreateInspectionDTO struct {
	EquipmentID      string             `json:"equipment_id" validate:"required,uuid4"`
	InspectionType   string             `json:"inspection_type" validate:"required,oneof=pre_use post_use periodic safety"`
	Result           string             `json:"result" validate:"required,oneof=pass fail conditional"`
	InspectionDate   string             `json:"inspection_date" validate:"required,date_format"`
	InspectorID      *string            `json:"inspector_id,omitempty" validate:"omitempty,uuid4"`
	Checklist        []ChecklistItemDTO `json:"checklist,omitempty" validate:"omitempty,dive"`
	Deficiencies     *string            `json:"deficiencies,omitempty" validate:"omitempty,max=2000"`
	CorrectiveAction *string            `json:"corrective_action,omitempty" validate:"omitempty,max=2000"`
	Notes            *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateInspectionDTO — после создания правятся только поля устранения
// замечаний. Результат, дата и чек-лист write-once.
type UpdateInspectionDTO struct {
	Deficiencies     *string `json:"deficiencies,omitempty" validate:"omitempty,max=2000"`
	CorrectiveAction *string `json:"corrective_action,omitempty" validate:"omitempty,max=2000"`
	Notes            *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type InspectionDTO struct {
	ID               string                   `json:"id"`
	EquipmentID      string                   `json:"equipment_id"`
	InspectionType   string                   `json:"inspection_type"`
	Result           string                   `json:"result"`
	InspectionDate   string                   `json:"inspection_date"`
	InspectorID      *string                  `json:"inspector_id,omitempty"`
	Checklist        []entities.ChecklistItem `json:"checklist,omitempty"`
	Deficiencies     *string                  `json:"deficiencies,omitempty"`
	CorrectiveAction *string                  `json:"corrective_action,omitempty"`
	Notes            *string                  `json:"notes,omitempty"`
	CreatedAt        string                   `json:"created_at,omitempty"`
	UpdatedAt        string                   `json:"updated_at,omitempty"`
}

func InspectionToDTO(ins *entities.Inspection) *InspectionDTO {
	out := &InspectionDTO{
		ID:               ins.ID.String(),
		EquipmentID:      ins.EquipmentID.String(),
		InspectionType:   ins.InspectionType,
		Result:           ins.Result,
		InspectionDate:   utils.FormatDate(ins.InspectionDate),
		Checklist:        ins.Checklist,
		Deficiencies:     ins.Deficiencies,
		CorrectiveAction: ins.CorrectiveAction,
		Notes:            ins.Notes,
	}
	if ins.InspectorID != nil {
		out.InspectorID = utils.ToPtr(ins.InspectorID.String())
	}
	if ins.CreatedAt != nil {
		out.CreatedAt = ins.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if ins.UpdatedAt != nil {
		out.UpdatedAt = ins.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func InspectionListToDTO(items []entities.Inspection) []InspectionDTO {
	out := make([]InspectionDTO, 0, len(items))
	for i := range items {
		out = append(out, *InspectionToDTO(&items[i]))
	}
	return out
}
