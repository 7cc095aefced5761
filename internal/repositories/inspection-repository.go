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

const inspectionTable = "equipment_inspections"

const inspectionFields = `id, company_id, equipment_id, inspection_type, result, inspection_date,
	inspector_id, checklist, deficiencies, corrective_action, notes, created_at, updated_at`

var inspectionAllowedColumns = map[string]string{
	"equipment_id":    "equipment_id",
	"inspection_type": "inspection_type",
	"result":          "result",
	"inspection_date": "inspection_date",
	"created_at":      "created_at",
}

type InspectionRepositoryInterface interface {
	List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Inspection, uint64, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Inspection, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, inspection *entities.Inspection) error
	UpdateCorrectiveFields(ctx context.Context, inspection *entities.Inspection) error
}

type InspectionRepository struct {
	storage *pgxpool.Pool
}

func NewInspectionRepository(storage *pgxpool.Pool) InspectionRepositoryInterface {
	return &InspectionRepository{storage: storage}
}

func scanInspection(row pgx.Row) (*entities.Inspection, error) {
	var i entities.Inspection
	var inspectorID uuid.NullUUID
	var checklist []byte
	var deficiencies, correctiveAction, notes null.String

	err := row.Scan(
		&i.ID, &i.CompanyID, &i.EquipmentID, &i.InspectionType, &i.Result, &i.InspectionDate,
		&inspectorID, &checklist, &deficiencies, &correctiveAction, &notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	i.InspectorID = nullUUIDToPtr(inspectorID)
	i.Deficiencies = nullStringToPtr(deficiencies)
	i.CorrectiveAction = nullStringToPtr(correctiveAction)
	i.Notes = nullStringToPtr(notes)
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &i.Checklist); err != nil {
			return nil, fmt.Errorf("ошибка разбора чек-листа: %w", err)
		}
	}
	return &i, nil
}

func (r *InspectionRepository) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Inspection, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From(inspectionTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, inspectionAllowedColumns)

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета инспекций: %w", err)
	}

	base := sq.Select(inspectionFields).
		From(inspectionTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("inspection_date DESC")
	}
	base = db.ApplyListParams(base, filter, inspectionAllowedColumns)

	querySQL, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка инспекций: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Inspection, 0)
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования инспекции: %w", err)
		}
		items = append(items, *i)
	}
	return items, total, rows.Err()
}

func (r *InspectionRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Inspection, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND company_id = $2`, inspectionFields, inspectionTable)

	i, err := scanInspection(r.storage.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

func (r *InspectionRepository) CreateInTx(ctx context.Context, tx pgx.Tx, inspection *entities.Inspection) error {
	checklist, err := json.Marshal(inspection.Checklist)
	if err != nil {
		return fmt.Errorf("ошибка сериализации чек-листа: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, equipment_id, inspection_type, result, inspection_date,
			inspector_id, checklist, deficiencies, corrective_action, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`, inspectionTable)

	_, err = tx.Exec(ctx, query,
		inspection.ID, inspection.CompanyID, inspection.EquipmentID,
		inspection.InspectionType, inspection.Result, inspection.InspectionDate,
		ptrToNullUUID(inspection.InspectorID), checklist,
		ptrToNullString(inspection.Deficiencies), ptrToNullString(inspection.CorrectiveAction),
		ptrToNullString(inspection.Notes),
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании инспекции: %w", err)
	}
	return nil
}

// UpdateCorrectiveFields обновляет только поля устранения замечаний.
// Ядро записи (тип, результат, дата, чек-лист) не перезаписывается.
func (r *InspectionRepository) UpdateCorrectiveFields(ctx context.Context, inspection *entities.Inspection) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deficiencies = $1, corrective_action = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
	`, inspectionTable)

	result, err := r.storage.Exec(ctx, query,
		ptrToNullString(inspection.Deficiencies), ptrToNullString(inspection.CorrectiveAction),
		ptrToNullString(inspection.Notes),
		inspection.ID, inspection.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении инспекции: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
