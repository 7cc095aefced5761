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

func newEquipmentFixture() (*fakeEquipmentRepo, EquipmentServiceInterface) {
	equipmentRepo := newFakeEquipmentRepo()
	svc := NewEquipmentService(equipmentRepo, &fakeTxManager{}, zap.NewNop())
	return equipmentRepo, svc
}

func TestEquipmentRegister_Defaults(t *testing.T) {
	_, svc := newEquipmentFixture()

	result, err := svc.Register(testCtx(), dto.CreateEquipmentDTO{Name: "Нивелир Leica NA720"})
	require.NoError(t, err)

	assert.Equal(t, constants.EquipmentStatusAvailable, result.Status, "новая единица всегда available")
	assert.Equal(t, constants.EquipmentTypeOther, result.EquipmentType)
	assert.Equal(t, constants.OwnershipOwned, result.OwnershipType)
	assert.NotEmpty(t, result.ID)
}

func TestEquipmentUpdate_PartialPatch(t *testing.T) {
	_, svc := newEquipmentFixture()

	created, err := svc.Register(testCtx(), dto.CreateEquipmentDTO{
		Name:     "Экскаватор CAT 320",
		Make:     utils.ToPtr("Caterpillar"),
		Location: utils.ToPtr("база №1"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(testCtx(), uuid.MustParse(created.ID), dto.UpdateEquipmentDTO{
		Location: utils.ToPtr("объект Северный"),
	})
	require.NoError(t, err)

	assert.Equal(t, "объект Северный", *updated.Location)
	assert.Equal(t, "Экскаватор CAT 320", updated.Name, "не присланные поля не меняются")
	assert.Equal(t, "Caterpillar", *updated.Make)
}

func TestEquipmentUpdateStatus_ManualTransitions(t *testing.T) {
	_, svc := newEquipmentFixture()

	created, err := svc.Register(testCtx(), dto.CreateEquipmentDTO{Name: "Самосвал"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// available -> out_of_service -> available -> retired
	result, err := svc.UpdateStatus(testCtx(), id, dto.UpdateEquipmentStatusDTO{Status: constants.EquipmentStatusOutOfService})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusOutOfService, result.Status)

	result, err = svc.UpdateStatus(testCtx(), id, dto.UpdateEquipmentStatusDTO{Status: constants.EquipmentStatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusAvailable, result.Status)

	result, err = svc.UpdateStatus(testCtx(), id, dto.UpdateEquipmentStatusDTO{Status: constants.EquipmentStatusRetired})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusRetired, result.Status)

	// retired терминален.
	_, err = svc.UpdateStatus(testCtx(), id, dto.UpdateEquipmentStatusDTO{Status: constants.EquipmentStatusAvailable})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestEquipmentUpdateStatus_Idempotent(t *testing.T) {
	_, svc := newEquipmentFixture()

	created, err := svc.Register(testCtx(), dto.CreateEquipmentDTO{Name: "Леса"})
	require.NoError(t, err)

	// Повтор того же статуса — no-op, не ошибка.
	result, err := svc.UpdateStatus(testCtx(), uuid.MustParse(created.ID),
		dto.UpdateEquipmentStatusDTO{Status: constants.EquipmentStatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusAvailable, result.Status)
}

func TestEquipmentFindByID_ScopedByCompany(t *testing.T) {
	equipmentRepo, svc := newEquipmentFixture()

	// Оборудование чужой компании не видно.
	foreign := entities.Equipment{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Чужой кран",
		Status:    constants.EquipmentStatusAvailable,
	}
	equipmentRepo.put(foreign)

	_, err := svc.FindByID(testCtx(), foreign.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
	assert.Equal(t, "оборудование не найдено", httpErr.Message)
}
