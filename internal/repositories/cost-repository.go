package repositories

import (
	"context"
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

const costTable = "equipment_costs"

const costFields = `id, company_id, equipment_id, job_id, cost_type, amount, cost_date,
	description, vendor_id, receipt_ref, notes, created_at, updated_at`

var costAllowedColumns = map[string]string{
	"equipment_id": "equipment_id",
	"job_id":       "job_id",
	"cost_type":    "cost_type",
	"cost_date":    "cost_date",
	"created_at":   "created_at",
}

// CostSummaryRow — агрегат сумм по одному ключу группировки.
type CostSummaryRow struct {
	Key   string
	Total float64
	Count uint64
}

type CostRepositoryInterface interface {
	List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.CostEvent, uint64, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.CostEvent, error)
	Create(ctx context.Context, event *entities.CostEvent) error
	Update(ctx context.Context, event *entities.CostEvent) error
	SummarizeByType(ctx context.Context, companyID, equipmentID uuid.UUID) ([]CostSummaryRow, error)
	SummarizeByJob(ctx context.Context, companyID, equipmentID uuid.UUID) ([]CostSummaryRow, error)
}

type CostRepository struct {
	storage *pgxpool.Pool
}

func NewCostRepository(storage *pgxpool.Pool) CostRepositoryInterface {
	return &CostRepository{storage: storage}
}

func scanCost(row pgx.Row) (*entities.CostEvent, error) {
	var c entities.CostEvent
	var jobID, vendorID uuid.NullUUID
	var description, receiptRef, notes null.String

	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EquipmentID, &jobID, &c.CostType, &c.Amount, &c.CostDate,
		&description, &vendorID, &receiptRef, &notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.JobID = nullUUIDToPtr(jobID)
	c.VendorID = nullUUIDToPtr(vendorID)
	c.Description = nullStringToPtr(description)
	c.ReceiptRef = nullStringToPtr(receiptRef)
	c.Notes = nullStringToPtr(notes)
	return &c, nil
}

func (r *CostRepository) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.CostEvent, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From(costTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, costAllowedColumns)

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета затрат: %w", err)
	}

	base := sq.Select(costFields).
		From(costTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("cost_date DESC")
	}
	base = db.ApplyListParams(base, filter, costAllowedColumns)

	querySQL, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка затрат: %w", err)
	}
	defer rows.Close()

	items := make([]entities.CostEvent, 0)
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования затраты: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

func (r *CostRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.CostEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND company_id = $2`, costFields, costTable)

	c, err := scanCost(r.storage.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CostRepository) Create(ctx context.Context, event *entities.CostEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, equipment_id, job_id, cost_type, amount, cost_date,
			description, vendor_id, receipt_ref, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`, costTable)

	_, err := r.storage.Exec(ctx, query,
		event.ID, event.CompanyID, event.EquipmentID, ptrToNullUUID(event.JobID),
		event.CostType, event.Amount, event.CostDate,
		ptrToNullString(event.Description), ptrToNullUUID(event.VendorID),
		ptrToNullString(event.ReceiptRef), ptrToNullString(event.Notes),
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании затраты: %w", err)
	}
	return nil
}

// Update — корректирующее обновление строки журнала. Сам журнал
// append-only, удаления нет.
func (r *CostRepository) Update(ctx context.Context, event *entities.CostEvent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET job_id = $1, cost_type = $2, amount = $3, cost_date = $4,
			description = $5, vendor_id = $6, receipt_ref = $7, notes = $8, updated_at = NOW()
		WHERE id = $9 AND company_id = $10
	`, costTable)

	result, err := r.storage.Exec(ctx, query,
		ptrToNullUUID(event.JobID), event.CostType, event.Amount, event.CostDate,
		ptrToNullString(event.Description), ptrToNullUUID(event.VendorID),
		ptrToNullString(event.ReceiptRef), ptrToNullString(event.Notes),
		event.ID, event.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении затраты: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CostRepository) summarize(ctx context.Context, companyID, equipmentID uuid.UUID, keyExpr string) ([]CostSummaryRow, error) {
	query := fmt.Sprintf(`
		SELECT %s AS grp, COALESCE(SUM(amount), 0), COUNT(*)
		FROM %s
		WHERE company_id = $1 AND equipment_id = $2
		GROUP BY grp
		ORDER BY grp
	`, keyExpr, costTable)

	rows, err := r.storage.Query(ctx, query, companyID, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации затрат: %w", err)
	}
	defer rows.Close()

	result := make([]CostSummaryRow, 0)
	for rows.Next() {
		var row CostSummaryRow
		if err := rows.Scan(&row.Key, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования агрегата: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *CostRepository) SummarizeByType(ctx context.Context, companyID, equipmentID uuid.UUID) ([]CostSummaryRow, error) {
	return r.summarize(ctx, companyID, equipmentID, "cost_type")
}

// SummarizeByJob группирует по объекту; записи без привязки к объекту
// попадают в группу "unassigned".
func (r *CostRepository) SummarizeByJob(ctx context.Context, companyID, equipmentID uuid.UUID) ([]CostSummaryRow, error) {
	return r.summarize(ctx, companyID, equipmentID, "COALESCE(job_id::text, 'unassigned')")
}
