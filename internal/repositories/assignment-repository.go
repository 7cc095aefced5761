package repositories

import (
	"context"
	"errors"
	"fmt"

	"equipment-system/internal/entities"
	db "equipment-system/internal/infrastructure/bd"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assignmentTable = "equipment_assignments"

const assignmentFields = `id, company_id, equipment_id, job_id, assigned_to, start_date, end_date,
	status, hours_used, notes, created_at, updated_at`

var assignmentAllowedColumns = map[string]string{
	"equipment_id": "equipment_id",
	"job_id":       "job_id",
	"assigned_to":  "assigned_to",
	"status":       "status",
	"start_date":   "start_date",
	"created_at":   "created_at",
}

type AssignmentRepositoryInterface interface {
	List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Assignment, uint64, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Assignment, error)
	FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Assignment, error)
	ListActiveForEquipmentInTx(ctx context.Context, tx pgx.Tx, companyID, equipmentID, excludeID uuid.UUID) ([]entities.Assignment, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error
}

type AssignmentRepository struct {
	storage *pgxpool.Pool
}

func NewAssignmentRepository(storage *pgxpool.Pool) AssignmentRepositoryInterface {
	return &AssignmentRepository{storage: storage}
}

func scanAssignment(row pgx.Row) (*entities.Assignment, error) {
	var a entities.Assignment
	var jobID, assignedTo uuid.NullUUID
	var endDate null.Time
	var notes null.String

	err := row.Scan(
		&a.ID, &a.CompanyID, &a.EquipmentID, &jobID, &assignedTo, &a.StartDate, &endDate,
		&a.Status, &a.HoursUsed, &notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.JobID = nullUUIDToPtr(jobID)
	a.AssignedTo = nullUUIDToPtr(assignedTo)
	a.EndDate = nullTimeToPtr(endDate)
	a.Notes = nullStringToPtr(notes)
	return &a, nil
}

func (r *AssignmentRepository) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Assignment, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From(assignmentTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, assignmentAllowedColumns)

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета назначений: %w", err)
	}

	base := sq.Select(assignmentFields).
		From(assignmentTable).
		Where(sq.Eq{"company_id": companyID}).
		PlaceholderFormat(sq.Dollar)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("start_date DESC")
	}
	base = db.ApplyListParams(base, filter, assignmentAllowedColumns)

	querySQL, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка назначений: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования назначения: %w", err)
		}
		items = append(items, *a)
	}
	return items, total, rows.Err()
}

func (r *AssignmentRepository) findByID(ctx context.Context, q querier, companyID, id uuid.UUID) (*entities.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND company_id = $2`, assignmentFields, assignmentTable)

	a, err := scanAssignment(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Assignment, error) {
	return r.findByID(ctx, r.storage, companyID, id)
}

func (r *AssignmentRepository) FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Assignment, error) {
	return r.findByID(ctx, tx, companyID, id)
}

// ListActiveForEquipmentInTx возвращает активные назначения единицы
// оборудования. Вызывается внутри транзакции после блокировки строки
// оборудования, поэтому проверка пересечений не гонится с параллельной
// записью.
func (r *AssignmentRepository) ListActiveForEquipmentInTx(ctx context.Context, tx pgx.Tx, companyID, equipmentID, excludeID uuid.UUID) ([]entities.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE company_id = $1 AND equipment_id = $2 AND status = $3 AND id <> $4
		ORDER BY start_date
	`, assignmentFields, assignmentTable)

	rows, err := tx.Query(ctx, query, companyID, equipmentID, constants.AssignmentStatusActive, excludeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных назначений: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования назначения: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *AssignmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, equipment_id, job_id, assigned_to, start_date, end_date,
			status, hours_used, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`, assignmentTable)

	_, err := tx.Exec(ctx, query,
		assignment.ID, assignment.CompanyID, assignment.EquipmentID,
		ptrToNullUUID(assignment.JobID), ptrToNullUUID(assignment.AssignedTo),
		assignment.StartDate, ptrToNullTime(assignment.EndDate),
		assignment.Status, assignment.HoursUsed, ptrToNullString(assignment.Notes),
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании назначения: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET job_id = $1, assigned_to = $2, start_date = $3, end_date = $4,
			status = $5, hours_used = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND company_id = $9
	`, assignmentTable)

	result, err := tx.Exec(ctx, query,
		ptrToNullUUID(assignment.JobID), ptrToNullUUID(assignment.AssignedTo),
		assignment.StartDate, ptrToNullTime(assignment.EndDate),
		assignment.Status, assignment.HoursUsed, ptrToNullString(assignment.Notes),
		assignment.ID, assignment.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении назначения: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
