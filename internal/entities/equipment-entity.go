package entities

import (
	"time"

	"equipment-system/pkg/types"

	"github.com/google/uuid"
)

// Equipment — физический актив компании (техника, транспорт, инструмент).
// Агрегатный корень подсистемы: назначения, обслуживание, инспекции и
// затраты ссылаются на него. Строка никогда не удаляется — списание
// выполняется переводом в терминальный статус retired.
type Equipment struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"company_id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	EquipmentType string     `json:"equipment_type"`
	Status        string     `json:"status"`
	OwnershipType string     `json:"ownership_type"`
	Make          *string    `json:"make,omitempty"`
	Model         *string    `json:"model,omitempty"`
	SerialNumber  *string    `json:"serial_number,omitempty"`
	Year          *int       `json:"year,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice float64    `json:"purchase_price"`
	CurrentValue  float64    `json:"current_value"`
	DailyRate     float64    `json:"daily_rate"`
	Location      *string    `json:"location,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	PhotoRefs     []string   `json:"photo_refs,omitempty"`

	types.BaseEntity
}
