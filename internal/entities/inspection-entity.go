package entities

import (
	"time"

	"equipment-system/pkg/types"

	"github.com/google/uuid"
)

// ChecklistItem — один пункт чек-листа инспекции.
type ChecklistItem struct {
	Item    string `json:"item"`
	Passed  bool   `json:"passed"`
	Comment string `json:"comment,omitempty"`
}

// Inspection — результат проверки на момент времени. Ядро записи
// (тип, результат, дата, чек-лист, инспектор) неизменяемо после
// создания; задним числом правятся только поля устранения замечаний.
type Inspection struct {
	ID               uuid.UUID       `json:"id"`
	CompanyID        uuid.UUID       `json:"company_id"`
	EquipmentID      uuid.UUID       `json:"equipment_id"`
	InspectionType   string          `json:"inspection_type"`
	Result           string          `json:"result"`
	InspectionDate   time.Time       `json:"inspection_date"`
	InspectorID      *uuid.UUID      `json:"inspector_id,omitempty"`
	Checklist        []ChecklistItem `json:"checklist,omitempty"`
	Deficiencies     *string         `json:"deficiencies,omitempty"`
	CorrectiveAction *string         `json:"corrective_action,omitempty"`
	Notes            *string         `json:"notes,omitempty"`

	types.BaseEntity
}
