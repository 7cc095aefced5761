// Package seeders наполняет базу демонстрационным парком оборудования
// для локальной разработки. На продуктивной базе не запускается.
package seeders

import (
	"context"
	"fmt"

	"equipment-system/pkg/constants"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DemoCompanyID — компания, под которой создаются демо-данные.
// Токен для локальных запросов должен нести этот же company_id.
var DemoCompanyID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// DemoUserID — пользователь демо-компании, подставляется в локальный токен.
var DemoUserID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

type seedEquipment struct {
	name          string
	equipmentType string
	make_         string
	model         string
	dailyRate     float64
}

var demoPark = []seedEquipment{
	{"Экскаватор CAT 320", constants.EquipmentTypeHeavyMachinery, "Caterpillar", "320", 450.00},
	{"Самосвал КамАЗ 6520", constants.EquipmentTypeVehicle, "КамАЗ", "6520", 280.00},
	{"Перфоратор Hilti TE 70", constants.EquipmentTypePowerTool, "Hilti", "TE 70-ATC", 25.00},
	{"Леса строительные 100 м²", constants.EquipmentTypeScaffolding, "Layher", "Blitz", 60.00},
	{"Нивелир Leica NA720", constants.EquipmentTypeMeasuring, "Leica", "NA720", 15.00},
}

func SeedEquipment(ctx context.Context, pool *pgxpool.Pool) error {
	for _, item := range demoPark {
		_, err := pool.Exec(ctx, `
			INSERT INTO equipment (id, company_id, name, equipment_type, status, ownership_type,
				make, model, daily_rate, photo_refs, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '[]', NOW(), NOW())
			ON CONFLICT (id) DO NOTHING
		`,
			uuid.New(), DemoCompanyID, item.name, item.equipmentType,
			constants.EquipmentStatusAvailable, constants.OwnershipOwned,
			item.make_, item.model, item.dailyRate,
		)
		if err != nil {
			return fmt.Errorf("не удалось создать демо-оборудование %q: %w", item.name, err)
		}
	}
	return nil
}
