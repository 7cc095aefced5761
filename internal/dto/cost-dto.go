package dto

import (
	"equipment-system/internal/entities"
	"equipment-system/pkg/utils"
)

type CreateCostDTO struct {
	EquipmentID string   `json:"equipment_id" validate:"required,uuid4"`
	JobID       *string  `json:"job_id,omitempty" validate:"omitempty,uuid4"`
	CostType    string   `json:"cost_type" validate:"required,oneof=daily_rate fuel repair insurance transport other"`
	Amount      *float64 `json:"amount" validate:"required,money"`
	CostDate    string   `json:"cost_date" validate:"required,date_format"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	VendorID    *string  `json:"vendor_id,omitempty" validate:"omitempty,uuid4"`
	ReceiptRef  *string  `json:"receipt_ref,omitempty" validate:"omitempty,max=500"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCostDTO — корректирующая правка той же строки (сторно в
// журнале не предусмотрено).
type UpdateCostDTO struct {
	JobID       *string  `json:"job_id,omitempty" validate:"omitempty,uuid4"`
	CostType    *string  `json:"cost_type,omitempty" validate:"omitempty,oneof=daily_rate fuel repair insurance transport other"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,money"`
	CostDate    *string  `json:"cost_date,omitempty" validate:"omitempty,date_format"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	VendorID    *string  `json:"vendor_id,omitempty" validate:"omitempty,uuid4"`
	ReceiptRef  *string  `json:"receipt_ref,omitempty" validate:"omitempty,max=500"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type CostDTO struct {
	ID          string  `json:"id"`
	EquipmentID string  `json:"equipment_id"`
	JobID       *string `json:"job_id,omitempty"`
	CostType    string  `json:"cost_type"`
	Amount      float64 `json:"amount"`
	CostDate    string  `json:"cost_date"`
	Description *string `json:"description,omitempty"`
	VendorID    *string `json:"vendor_id,omitempty"`
	ReceiptRef  *string `json:"receipt_ref,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

func CostToDTO(c *entities.CostEvent) *CostDTO {
	out := &CostDTO{
		ID:          c.ID.String(),
		EquipmentID: c.EquipmentID.String(),
		CostType:    c.CostType,
		Amount:      c.Amount,
		CostDate:    utils.FormatDate(c.CostDate),
		Description: c.Description,
		ReceiptRef:  c.ReceiptRef,
		Notes:       c.Notes,
	}
	if c.JobID != nil {
		out.JobID = utils.ToPtr(c.JobID.String())
	}
	if c.VendorID != nil {
		out.VendorID = utils.ToPtr(c.VendorID.String())
	}
	if c.CreatedAt != nil {
		out.CreatedAt = c.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = c.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func CostListToDTO(items []entities.CostEvent) []CostDTO {
	out := make([]CostDTO, 0, len(items))
	for i := range items {
		out = append(out, *CostToDTO(&items[i]))
	}
	return out
}

// CostSummaryDTO — агрегаты по оборудованию/объекту/типу затрат.
// Считаются на чтении, избыточно не хранятся.
type CostSummaryRowDTO struct {
	CostType string  `json:"cost_type,omitempty"`
	JobID    *string `json:"job_id,omitempty"`
	Total    float64 `json:"total"`
	Count    uint64  `json:"count"`
}

type CostSummaryDTO struct {
	Total  float64             `json:"total"`
	ByType []CostSummaryRowDTO `json:"by_type"`
	ByJob  []CostSummaryRowDTO `json:"by_job"`
}
