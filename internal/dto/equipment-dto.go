package dto

import (
	"equipment-system/internal/entities"
	"equipment-system/pkg/utils"
)

type CreateEquipmentDTO struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	EquipmentType string   `json:"equipment_type,omitempty" validate:"omitempty,oneof=heavy_machinery vehicle power_tool hand_tool scaffolding safety_equipment measuring other"`
	OwnershipType string   `json:"ownership_type,omitempty" validate:"omitempty,oneof=owned leased rented"`
	Make          *string  `json:"make,omitempty" validate:"omitempty,max=255"`
	Model         *string  `json:"model,omitempty" validate:"omitempty,max=255"`
	SerialNumber  *string  `json:"serial_number,omitempty" validate:"omitempty,max=255"`
	Year          *int     `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	PurchaseDate  *string  `json:"purchase_date,omitempty" validate:"omitempty,date_format"`
	PurchasePrice float64  `json:"purchase_price,omitempty" validate:"money"`
	CurrentValue  float64  `json:"current_value,omitempty" validate:"money"`
	DailyRate     float64  `json:"daily_rate,omitempty" validate:"money"`
	Location      *string  `json:"location,omitempty" validate:"omitempty,max=500"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PhotoRefs     []string `json:"photo_refs,omitempty" validate:"omitempty,dive,max=500"`
}

// UpdateEquipmentDTO — частичный патч: мутируются только присланные
// поля. Поля status здесь нет намеренно: статус меняется только через
// таблицу переходов (выделенная операция либо события других компонентов).
type UpdateEquipmentDTO struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	EquipmentType *string  `json:"equipment_type,omitempty" validate:"omitempty,oneof=heavy_machinery vehicle power_tool hand_tool scaffolding safety_equipment measuring other"`
	OwnershipType *string  `json:"ownership_type,omitempty" validate:"omitempty,oneof=owned leased rented"`
	Make          *string  `json:"make,omitempty" validate:"omitempty,max=255"`
	Model         *string  `json:"model,omitempty" validate:"omitempty,max=255"`
	SerialNumber  *string  `json:"serial_number,omitempty" validate:"omitempty,max=255"`
	Year          *int     `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	PurchaseDate  *string  `json:"purchase_date,omitempty" validate:"omitempty,date_format"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,money"`
	CurrentValue  *float64 `json:"current_value,omitempty" validate:"omitempty,money"`
	DailyRate     *float64 `json:"daily_rate,omitempty" validate:"omitempty,money"`
	Location      *string  `json:"location,omitempty" validate:"omitempty,max=500"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PhotoRefs     []string `json:"photo_refs,omitempty" validate:"omitempty,dive,max=500"`
}

// UpdateEquipmentStatusDTO — ручной перевод статуса. Ручные цели
// ограничены: в assigned/maintenance оборудование попадает только
// через соответствующие события.
type UpdateEquipmentStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=available out_of_service retired"`
}

type EquipmentDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	EquipmentType string   `json:"equipment_type"`
	Status        string   `json:"status"`
	OwnershipType string   `json:"ownership_type"`
	Make          *string  `json:"make,omitempty"`
	Model         *string  `json:"model,omitempty"`
	SerialNumber  *string  `json:"serial_number,omitempty"`
	Year          *int     `json:"year,omitempty"`
	PurchaseDate  *string  `json:"purchase_date,omitempty"`
	PurchasePrice float64  `json:"purchase_price"`
	CurrentValue  float64  `json:"current_value"`
	DailyRate     float64  `json:"daily_rate"`
	Location      *string  `json:"location,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	PhotoRefs     []string `json:"photo_refs,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

func EquipmentToDTO(e *entities.Equipment) *EquipmentDTO {
	out := &EquipmentDTO{
		ID:            e.ID.String(),
		Name:          e.Name,
		Description:   e.Description,
		EquipmentType: e.EquipmentType,
		Status:        e.Status,
		OwnershipType: e.OwnershipType,
		Make:          e.Make,
		Model:         e.Model,
		SerialNumber:  e.SerialNumber,
		Year:          e.Year,
		PurchaseDate:  utils.FormatDatePtr(e.PurchaseDate),
		PurchasePrice: e.PurchasePrice,
		CurrentValue:  e.CurrentValue,
		DailyRate:     e.DailyRate,
		Location:      e.Location,
		Notes:         e.Notes,
		PhotoRefs:     e.PhotoRefs,
	}
	if e.CreatedAt != nil {
		out.CreatedAt = e.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if e.UpdatedAt != nil {
		out.UpdatedAt = e.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func EquipmentListToDTO(items []entities.Equipment) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(items))
	for i := range items {
		out = append(out, *EquipmentToDTO(&items[i]))
	}
	return out
}

// ImportReportDTO — итог массовой загрузки из Excel.
type ImportReportDTO struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
