package services

import (
	"context"
	"time"

	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/pkg/contextkeys"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Фейки репозиториев держат данные в памяти и реализуют те же
// интерфейсы, что и pgx-реализации: сервисы тестируются без БД.

var (
	testCompanyID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testUserID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func testCtx() context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.CompanyIDKey, testCompanyID)
	return context.WithValue(ctx, contextkeys.UserIDKey, testUserID)
}

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// --- оборудование ---

type fakeEquipmentRepo struct {
	items map[uuid.UUID]entities.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[uuid.UUID]entities.Equipment)}
}

func (r *fakeEquipmentRepo) put(e entities.Equipment) {
	if e.CreatedAt == nil {
		now := time.Now()
		e.CreatedAt = &now
		e.UpdatedAt = &now
	}
	r.items[e.ID] = e
}

func (r *fakeEquipmentRepo) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0)
	for _, e := range r.items {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Equipment, error) {
	e, ok := r.items[id]
	if !ok || e.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	copy := e
	return &copy, nil
}

func (r *fakeEquipmentRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Equipment, error) {
	return r.FindByID(ctx, companyID, id)
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, equipment *entities.Equipment) error {
	r.put(*equipment)
	return nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, equipment *entities.Equipment) error {
	stored, ok := r.items[equipment.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	status := stored.Status
	updated := *equipment
	updated.Status = status
	r.items[equipment.ID] = updated
	return nil
}

func (r *fakeEquipmentRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID, status string) error {
	e, ok := r.items[id]
	if !ok || e.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	e.Status = status
	r.items[id] = e
	return nil
}

// --- назначения ---

type fakeAssignmentRepo struct {
	items map[uuid.UUID]entities.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{items: make(map[uuid.UUID]entities.Assignment)}
}

func (r *fakeAssignmentRepo) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Assignment, uint64, error) {
	out := make([]entities.Assignment, 0)
	for _, a := range r.items {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeAssignmentRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Assignment, error) {
	a, ok := r.items[id]
	if !ok || a.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	copy := a
	return &copy, nil
}

func (r *fakeAssignmentRepo) FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.Assignment, error) {
	return r.FindByID(ctx, companyID, id)
}

func (r *fakeAssignmentRepo) ListActiveForEquipmentInTx(ctx context.Context, tx pgx.Tx, companyID, equipmentID, excludeID uuid.UUID) ([]entities.Assignment, error) {
	out := make([]entities.Assignment, 0)
	for _, a := range r.items {
		if a.CompanyID == companyID && a.EquipmentID == equipmentID &&
			a.Status == "active" && a.ID != excludeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error {
	r.items[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, assignment *entities.Assignment) error {
	if _, ok := r.items[assignment.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[assignment.ID] = *assignment
	return nil
}

// --- обслуживание ---

type fakeMaintenanceRepo struct {
	items map[uuid.UUID]entities.MaintenanceRecord
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{items: make(map[uuid.UUID]entities.MaintenanceRecord)}
}

func (r *fakeMaintenanceRepo) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.MaintenanceRecord, uint64, error) {
	out := make([]entities.MaintenanceRecord, 0)
	for _, m := range r.items {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeMaintenanceRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error) {
	m, ok := r.items[id]
	if !ok || m.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	copy := m
	return &copy, nil
}

func (r *fakeMaintenanceRepo) FindByIDInTx(ctx context.Context, tx pgx.Tx, companyID, id uuid.UUID) (*entities.MaintenanceRecord, error) {
	return r.FindByID(ctx, companyID, id)
}

func (r *fakeMaintenanceRepo) Create(ctx context.Context, record *entities.MaintenanceRecord) error {
	r.items[record.ID] = *record
	return nil
}

func (r *fakeMaintenanceRepo) CreateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error {
	return r.Create(ctx, record)
}

func (r *fakeMaintenanceRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, record *entities.MaintenanceRecord) error {
	if _, ok := r.items[record.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[record.ID] = *record
	return nil
}

// --- инспекции ---

type fakeInspectionRepo struct {
	items map[uuid.UUID]entities.Inspection
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{items: make(map[uuid.UUID]entities.Inspection)}
}

func (r *fakeInspectionRepo) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.Inspection, uint64, error) {
	out := make([]entities.Inspection, 0)
	for _, i := range r.items {
		if i.CompanyID == companyID {
			out = append(out, i)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeInspectionRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.Inspection, error) {
	i, ok := r.items[id]
	if !ok || i.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	copy := i
	return &copy, nil
}

func (r *fakeInspectionRepo) CreateInTx(ctx context.Context, tx pgx.Tx, inspection *entities.Inspection) error {
	r.items[inspection.ID] = *inspection
	return nil
}

func (r *fakeInspectionRepo) UpdateCorrectiveFields(ctx context.Context, inspection *entities.Inspection) error {
	stored, ok := r.items[inspection.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Deficiencies = inspection.Deficiencies
	stored.CorrectiveAction = inspection.CorrectiveAction
	stored.Notes = inspection.Notes
	r.items[inspection.ID] = stored
	return nil
}

// --- затраты ---

type fakeCostRepo struct {
	items map[uuid.UUID]entities.CostEvent
}

func newFakeCostRepo() *fakeCostRepo {
	return &fakeCostRepo{items: make(map[uuid.UUID]entities.CostEvent)}
}

func (r *fakeCostRepo) List(ctx context.Context, companyID uuid.UUID, filter types.Filter) ([]entities.CostEvent, uint64, error) {
	out := make([]entities.CostEvent, 0)
	for _, c := range r.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeCostRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entities.CostEvent, error) {
	c, ok := r.items[id]
	if !ok || c.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	copy := c
	return &copy, nil
}

func (r *fakeCostRepo) Create(ctx context.Context, event *entities.CostEvent) error {
	r.items[event.ID] = *event
	return nil
}

func (r *fakeCostRepo) Update(ctx context.Context, event *entities.CostEvent) error {
	if _, ok := r.items[event.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[event.ID] = *event
	return nil
}

func (r *fakeCostRepo) SummarizeByType(ctx context.Context, companyID, equipmentID uuid.UUID) ([]repositories.CostSummaryRow, error) {
	grouped := make(map[string]*repositories.CostSummaryRow)
	order := make([]string, 0)
	for _, c := range r.items {
		if c.CompanyID != companyID || c.EquipmentID != equipmentID {
			continue
		}
		row, ok := grouped[c.CostType]
		if !ok {
			row = &repositories.CostSummaryRow{Key: c.CostType}
			grouped[c.CostType] = row
			order = append(order, c.CostType)
		}
		row.Total += c.Amount
		row.Count++
	}
	out := make([]repositories.CostSummaryRow, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

func (r *fakeCostRepo) SummarizeByJob(ctx context.Context, companyID, equipmentID uuid.UUID) ([]repositories.CostSummaryRow, error) {
	grouped := make(map[string]*repositories.CostSummaryRow)
	order := make([]string, 0)
	for _, c := range r.items {
		if c.CompanyID != companyID || c.EquipmentID != equipmentID {
			continue
		}
		key := "unassigned"
		if c.JobID != nil {
			key = c.JobID.String()
		}
		row, ok := grouped[key]
		if !ok {
			row = &repositories.CostSummaryRow{Key: key}
			grouped[key] = row
			order = append(order, key)
		}
		row.Total += c.Amount
		row.Count++
	}
	out := make([]repositories.CostSummaryRow, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

// --- кеш ---

type fakeCacheRepo struct {
	values map[string]string
	sets   int
	dels   int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		r.values[key] = string(v)
	case string:
		r.values[key] = v
	}
	r.sets++
	return nil
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(r.values, key)
	}
	r.dels++
	return nil
}
