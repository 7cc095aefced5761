package services

import (
	"testing"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssignmentFixture() (*fakeEquipmentRepo, *fakeAssignmentRepo, AssignmentServiceInterface, entities.Equipment) {
	equipmentRepo := newFakeEquipmentRepo()
	assignmentRepo := newFakeAssignmentRepo()
	svc := NewAssignmentService(assignmentRepo, equipmentRepo, &fakeTxManager{}, zap.NewNop())

	equipment := entities.Equipment{
		ID:        uuid.New(),
		CompanyID: testCompanyID,
		Name:      "Экскаватор CAT 320",
		Status:    constants.EquipmentStatusAvailable,
	}
	equipmentRepo.put(equipment)
	return equipmentRepo, assignmentRepo, svc, equipment
}

func TestAssignmentCreate_MarksEquipmentAssigned(t *testing.T) {
	equipmentRepo, _, svc, equipment := newAssignmentFixture()

	result, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
		EndDate:     utils.ToPtr("2025-08-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AssignmentStatusActive, result.Status)

	stored, err := equipmentRepo.FindByID(testCtx(), testCompanyID, equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusAssigned, stored.Status)
}

func TestAssignmentCreate_RejectsOverlap(t *testing.T) {
	equipmentRepo, _, svc, equipment := newAssignmentFixture()

	_, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
		EndDate:     utils.ToPtr("2025-08-10"),
	})
	require.NoError(t, err)

	// Второе назначение не на assigned-оборудование невозможно? Интервал
	// будущего периода не пересекается, но оборудование уже assigned —
	// сверяем именно пересечение: сначала вернём статус available.
	require.NoError(t, equipmentRepo.UpdateStatusInTx(testCtx(), nil, testCompanyID, equipment.ID,
		constants.EquipmentStatusAvailable))

	_, err = svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-05",
		EndDate:     utils.ToPtr("2025-08-15"),
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code, "пересечение интервалов должно давать конфликт")
}

func TestAssignmentCreate_AllowsAdjacentIntervals(t *testing.T) {
	equipmentRepo, _, svc, equipment := newAssignmentFixture()

	_, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
		EndDate:     utils.ToPtr("2025-08-10"),
	})
	require.NoError(t, err)

	require.NoError(t, equipmentRepo.UpdateStatusInTx(testCtx(), nil, testCompanyID, equipment.ID,
		constants.EquipmentStatusAvailable))

	// [01..10) и [10..20) — граничные даты не пересекаются.
	_, err = svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-10",
		EndDate:     utils.ToPtr("2025-08-20"),
	})
	assert.NoError(t, err)
}

func TestAssignmentCreate_RejectsUnavailableEquipment(t *testing.T) {
	for _, status := range []string{
		constants.EquipmentStatusMaintenance,
		constants.EquipmentStatusOutOfService,
		constants.EquipmentStatusRetired,
	} {
		t.Run(status, func(t *testing.T) {
			equipmentRepo, _, svc, equipment := newAssignmentFixture()
			require.NoError(t, equipmentRepo.UpdateStatusInTx(testCtx(), nil, testCompanyID, equipment.ID, status))

			_, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
				EquipmentID: equipment.ID.String(),
				StartDate:   "2025-08-01",
			})
			var httpErr *apperrors.HttpError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, 409, httpErr.Code)
		})
	}
}

func TestAssignmentCreate_AllowsEqualDates(t *testing.T) {
	_, _, svc, equipment := newAssignmentFixture()

	// [d, d) — пустое окно, по полуоткрытому интервалу это допустимый ввод.
	result, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2026-03-01",
		EndDate:     utils.ToPtr("2026-03-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AssignmentStatusActive, result.Status)
	require.NotNil(t, result.EndDate)
	assert.Equal(t, result.StartDate, *result.EndDate)
}

func TestAssignmentCreate_EndBeforeStart(t *testing.T) {
	_, _, svc, equipment := newAssignmentFixture()

	_, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-10",
		EndDate:     utils.ToPtr("2025-08-01"),
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestAssignmentUpdate_AllowsEqualDates(t *testing.T) {
	_, _, svc, equipment := newAssignmentFixture()

	created, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2026-03-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(testCtx(), uuid.MustParse(created.ID), dto.UpdateAssignmentDTO{
		EndDate: utils.ToPtr("2026-03-01"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2026-03-01", *updated.EndDate)
}

func TestAssignmentUpdate_CloseReturnsEquipmentToAvailable(t *testing.T) {
	equipmentRepo, _, svc, equipment := newAssignmentFixture()

	created, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(testCtx(), uuid.MustParse(created.ID), dto.UpdateAssignmentDTO{
		Status:    utils.ToPtr(constants.AssignmentStatusCompleted),
		HoursUsed: utils.ToPtr(36.5),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AssignmentStatusCompleted, updated.Status)
	assert.NotNil(t, updated.EndDate, "закрытие проставляет дату окончания")

	stored, err := equipmentRepo.FindByID(testCtx(), testCompanyID, equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusAvailable, stored.Status)
}

func TestAssignmentUpdate_CloseKeepsOutOfServiceEquipment(t *testing.T) {
	equipmentRepo, _, svc, equipment := newAssignmentFixture()

	created, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
	})
	require.NoError(t, err)

	// Провал инспекции успел вывести оборудование из эксплуатации.
	require.NoError(t, equipmentRepo.UpdateStatusInTx(testCtx(), nil, testCompanyID, equipment.ID,
		constants.EquipmentStatusOutOfService))

	_, err = svc.Update(testCtx(), uuid.MustParse(created.ID), dto.UpdateAssignmentDTO{
		Status: utils.ToPtr(constants.AssignmentStatusCompleted),
	})
	require.NoError(t, err)

	stored, err := equipmentRepo.FindByID(testCtx(), testCompanyID, equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusOutOfService, stored.Status,
		"закрытие назначения не должно возвращать в available оборудование, выведенное из эксплуатации")
}

func TestAssignmentUpdate_ClosedAllowsOnlyCorrections(t *testing.T) {
	_, _, svc, equipment := newAssignmentFixture()

	created, err := svc.Create(testCtx(), dto.CreateAssignmentDTO{
		EquipmentID: equipment.ID.String(),
		StartDate:   "2025-08-01",
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	_, err = svc.Update(testCtx(), id, dto.UpdateAssignmentDTO{
		Status: utils.ToPtr(constants.AssignmentStatusCompleted),
	})
	require.NoError(t, err)

	// Корректировка часов после закрытия — допустима.
	updated, err := svc.Update(testCtx(), id, dto.UpdateAssignmentDTO{HoursUsed: utils.ToPtr(40.0)})
	require.NoError(t, err)
	assert.Equal(t, 40.0, updated.HoursUsed)

	// Перенос дат — нет.
	_, err = svc.Update(testCtx(), id, dto.UpdateAssignmentDTO{StartDate: utils.ToPtr("2025-07-01")})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}
