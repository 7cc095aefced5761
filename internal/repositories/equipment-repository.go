package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"equipment-system/internal/entities"
	db "equipment-system/internal/infrastructure/bd"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentTable = "equipment"

const equipmentFields = `id, company_id, name, description, equipment_type, status, ownership_type,
	make, model, serial_number, year, purchase_date, purchase_price, current_value, daily_rate,
	location, notes, photo_refs, created_at, updated_at`

// Белый список фильтруемых/сортируемых колонок для списочных запросов.
var equipmentAllowedColumns = map[string]string{
	"status":         "status",
	"equipment_type": "equipment_type",
	"ownership_type": "ownership_type",
	"name":           "name",
	"created_at":     "created_at",
}

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Equipment, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Equipment, error)
	Create(ctx context.Context, equipment *entities.Equipment) error
	Update(ctx context.Context, equipment *entities.Equipment) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID, status string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var description, mk, model, serial, location, notes null.String
	var year null.Int
	var purchaseDate null.Time
	var photoRefs []byte

	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &description, &e.EquipmentType, &e.Status, &e.OwnershipType,
		&mk, &model, &serial, &year, &purchaseDate, &e.PurchasePrice, &e.CurrentValue, &e.DailyRate,
		&location, &notes, &photoRefs, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = nullStringToPtr(description)
	e.Make = nullStringToPtr(mk)
	e.Model = nullStringToPtr(model)
	e.SerialNumber = nullStringToPtr(serial)
	e.Location = nullStringToPtr(location)
	e.Notes = nullStringToPtr(notes)
	e.Year = nullIntToPtr(year)
	e.PurchaseDate = nullTimeToPtr(purchaseDate)
	if len(photoRefs) > 0 {
		if err := json.Unmarshal(photoRefs, &e.PhotoRefs); err != nil {
			return nil, fmt.Errorf("ошибка разбора photo_refs: %w", err)
		}
	}
	return &e, nil
}

func (r *EquipmentRepository) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Equipment, uint64, error) {
	base := sq.Select(equipmentFields).
		From(equipmentTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"make": pattern},
			sq.ILike{"model": pattern},
			sq.ILike{"serial_number": pattern},
		})
	}

	countBuilder := sq.Select("COUNT(*)").
		From(equipmentTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		countBuilder = countBuilder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"make": pattern},
			sq.ILike{"model": pattern},
			sq.ILike{"serial_number": pattern},
		})
	}
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, equipmentAllowedColumns)

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета оборудования: %w", err)
	}

	if len(filter.Sort) == 0 {
		base = base.OrderBy("created_at DESC")
	}
	base = db.ApplyListParams(base, filter, equipmentAllowedColumns)

	querySQL, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка оборудования: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования оборудования: %w", err)
		}
		items = append(items, *e)
	}
	return items, total, rows.Err()
}

func (r *EquipmentRepository) findByID(ctx context.Context, q querier, companyID, id uuid.UUID, forUpdate bool) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND company_id = $2`, equipmentFields, equipmentTable)
	if forUpdate {
		query += " FOR UPDATE"
	}

	e, err := scanEquipment(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Equipment, error) {
	return r.findByID(ctx, r.storage, companyID, id, false)
}

// FindForUpdateInTx читает строку оборудования под row-level lock.
// Сериализует конкурентные проверки пересечений и смены статуса по
// одной единице оборудования (см. §"кто может менять статус").
func (r *EquipmentRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Equipment, error) {
	return r.findByID(ctx, tx, companyID, id, true)
}

func (r *EquipmentRepository) Create(ctx context.Context, equipment *entities.Equipment) error {
	photoRefs, err := json.Marshal(equipment.PhotoRefs)
	if err != nil {
		return fmt.Errorf("ошибка сериализации photo_refs: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, name, description, equipment_type, status, ownership_type,
			make, model, serial_number, year, purchase_date, purchase_price, current_value, daily_rate,
			location, notes, photo_refs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
	`, equipmentTable)

	_, err = r.storage.Exec(ctx, query,
		equipment.ID, equipment.CompanyID, equipment.Name, ptrToNullString(equipment.Description),
		equipment.EquipmentType, equipment.Status, equipment.OwnershipType,
		ptrToNullString(equipment.Make), ptrToNullString(equipment.Model), ptrToNullString(equipment.SerialNumber),
		ptrToNullInt(equipment.Year), ptrToNullTime(equipment.PurchaseDate),
		equipment.PurchasePrice, equipment.CurrentValue, equipment.DailyRate,
		ptrToNullString(equipment.Location), ptrToNullString(equipment.Notes), photoRefs,
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании оборудования: %w", err)
	}
	return nil
}

// Update пишет всю строку целиком: сервис сначала читает сущность и
// накладывает патч, поэтому здесь не нужен динамический SET.
// Поле status этим методом не трогается.
func (r *EquipmentRepository) Update(ctx context.Context, equipment *entities.Equipment) error {
	photoRefs, err := json.Marshal(equipment.PhotoRefs)
	if err != nil {
		return fmt.Errorf("ошибка сериализации photo_refs: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, equipment_type = $3, ownership_type = $4,
			make = $5, model = $6, serial_number = $7, year = $8, purchase_date = $9,
			purchase_price = $10, current_value = $11, daily_rate = $12,
			location = $13, notes = $14, photo_refs = $15, updated_at = NOW()
		WHERE id = $16 AND company_id = $17
	`, equipmentTable)

	result, err := r.storage.Exec(ctx, query,
		equipment.Name, ptrToNullString(equipment.Description), equipment.EquipmentType, equipment.OwnershipType,
		ptrToNullString(equipment.Make), ptrToNullString(equipment.Model), ptrToNullString(equipment.SerialNumber),
		ptrToNullInt(equipment.Year), ptrToNullTime(equipment.PurchaseDate),
		equipment.PurchasePrice, equipment.CurrentValue, equipment.DailyRate,
		ptrToNullString(equipment.Location), ptrToNullString(equipment.Notes), photoRefs,
		equipment.ID, equipment.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatusInTx — единственная точка записи в equipment.status.
// Вызывается только внутри транзакции, где строка уже прочитана
// FOR UPDATE и переход проверен по таблице легальности.
func (r *EquipmentRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID, status string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`, equipmentTable)

	result, err := tx.Exec(ctx, query, status, id, companyID)
	if err != nil {
		return fmt.Errorf("ошибка при смене статуса оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
