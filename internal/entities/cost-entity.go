package entities

import (
	"time"

	"equipment-system/pkg/types"

	"github.com/google/uuid"
)

// CostEvent — денежная запись по единице оборудования, опционально
// привязанная к объекту. Журнал append-only: сторно не предусмотрено,
// ошибки исправляются корректирующим обновлением той же строки.
type CostEvent struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	EquipmentID uuid.UUID  `json:"equipment_id"`
	JobID       *uuid.UUID `json:"job_id,omitempty"`
	CostType    string     `json:"cost_type"`
	Amount      float64    `json:"amount"`
	CostDate    time.Time  `json:"cost_date"`
	Description *string    `json:"description,omitempty"`
	VendorID    *uuid.UUID `json:"vendor_id,omitempty"`
	ReceiptRef  *string    `json:"receipt_ref,omitempty"`
	Notes       *string    `json:"notes,omitempty"`

	types.BaseEntity
}
