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

const maintenanceTable = "maintenance_records"

const maintenanceFields = `id, company_id, equipment_id, maintenance_type, status, title, description,
	scheduled_date, completed_date, performed_by, service_provider, parts_cost, labor_cost, total_cost,
	notes, created_at, updated_at`

var maintenanceAllowedColumns = map[string]string{
	"equipment_id":     "equipment_id",
	"maintenance_type": "maintenance_type",
	"status":           "status",
	"scheduled_date":   "scheduled_date",
	"created_at":       "created_at",
}

type MaintenanceRepositoryInterface interface {
	List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.MaintenanceRecord, uint64, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error)
	FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error)
	Create(ctx context.Context, record *entities.MaintenanceRecord) error
	CreateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceRepository(storage *pgxpool.Pool) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage}
}

func scanMaintenance(row pgx.Row) (*entities.MaintenanceRecord, error) {
	var m entities.MaintenanceRecord
	var description, serviceProvider, notes null.String
	var scheduledDate, completedDate null.Time
	var performedBy uuid.NullUUID

	err := row.Scan(
		&m.ID, &m.CompanyID, &m.EquipmentID, &m.MaintenanceType, &m.Status, &m.Title, &description,
		&scheduledDate, &completedDate, &performedBy, &serviceProvider,
		&m.PartsCost, &m.LaborCost, &m.TotalCost,
		&notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Description = nullStringToPtr(description)
	m.ServiceProvider = nullStringToPtr(serviceProvider)
	m.Notes = nullStringToPtr(notes)
	m.ScheduledDate = nullTimeToPtr(scheduledDate)
	m.CompletedDate = nullTimeToPtr(completedDate)
	m.PerformedBy = nullUUIDToPtr(performedBy)
	return &m, nil
}

func (r *MaintenanceRepository) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.MaintenanceRecord, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From(maintenanceTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, maintenanceAllowedColumns)

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета записей обслуживания: %w", err)
	}

	base := sq.Select(maintenanceFields).
		From(maintenanceTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("scheduled_date DESC NULLS LAST")
	}
	base = db.ApplyListParams(base, filter, maintenanceAllowedColumns)

	querySQL, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка обслуживания: %w", err)
	}
	defer rows.Close()

	items := make([]entities.MaintenanceRecord, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования записи обслуживания: %w", err)
		}
		items = append(items, *m)
	}
	return items, total, rows.Err()
}

func (r *MaintenanceRepository) findByID(ctx context.Context, q querier, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND company_id = $2`, maintenanceFields, maintenanceTable)

	m, err := scanMaintenance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error) {
	return r.findByID(ctx, r.storage, companyID, id)
}

func (r *MaintenanceRepository) FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error) {
	return r.findByID(ctx, tx, companyID, id)
}

func (r *MaintenanceRepository) Create(ctx context.Context, record *entities.MaintenanceRecord) error {
	return r.create(ctx, r.storage, record)
}

// CreateInTx нужен записям, которые создаются сразу в статусе
// in_progress: вставка и смена статуса оборудования идут одной
// транзакцией.
func (r *MaintenanceRepository) CreateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error {
	return r.create(ctx, tx, record)
}

func (r *MaintenanceRepository) create(ctx context.Context, q querier, record *entities.MaintenanceRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, equipment_id, maintenance_type, status, title, description,
			scheduled_date, completed_date, performed_by, service_provider, parts_cost, labor_cost, total_cost,
			notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`, maintenanceTable)

	_, err := q.Exec(ctx, query,
		record.ID, record.CompanyID, record.EquipmentID, record.MaintenanceType, record.Status,
		record.Title, ptrToNullString(record.Description),
		ptrToNullTime(record.ScheduledDate), ptrToNullTime(record.CompletedDate),
		ptrToNullUUID(record.PerformedBy), ptrToNullString(record.ServiceProvider),
		record.PartsCost, record.LaborCost, record.TotalCost,
		ptrToNullString(record.Notes),
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании записи обслуживания: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET maintenance_type = $1, status = $2, title = $3, description = $4,
			scheduled_date = $5, completed_date = $6, performed_by = $7, service_provider = $8,
			parts_cost = $9, labor_cost = $10, total_cost = $11, notes = $12, updated_at = NOW()
		WHERE id = $13 AND company_id = $14
	`, maintenanceTable)

	result, err := tx.Exec(ctx, query,
		record.MaintenanceType, record.Status, record.Title, ptrToNullString(record.Description),
		ptrToNullTime(record.ScheduledDate), ptrToNullTime(record.CompletedDate),
		ptrToNullUUID(record.PerformedBy), ptrToNullString(record.ServiceProvider),
		record.PartsCost, record.LaborCost, record.TotalCost, ptrToNullString(record.Notes),
		record.ID, record.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи обслуживания: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
