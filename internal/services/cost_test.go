package services

import (
	"testing"
	"time"

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

func newCostFixture() (*fakeCostRepo, *fakeCacheRepo, CostServiceInterface, entities.Equipment) {
	equipmentRepo := newFakeEquipmentRepo()
	costRepo := newFakeCostRepo()
	cacheRepo := newFakeCacheRepo()
	svc := NewCostService(costRepo, equipmentRepo, cacheRepo, 10*time.Minute, zap.NewNop())

	equipment := entities.Equipment{
		ID:        uuid.New(),
		CompanyID: testCompanyID,
		Name:      "Перфоратор Hilti TE 70",
		Status:    constants.EquipmentStatusAvailable,
	}
	equipmentRepo.put(equipment)
	return costRepo, cacheRepo, svc, equipment
}

func TestCostCreate(t *testing.T) {
	_, _, svc, equipment := newCostFixture()

	result, err := svc.Create(testCtx(), dto.CreateCostDTO{
		EquipmentID: equipment.ID.String(),
		CostType:    constants.CostTypeFuel,
		Amount:      utils.ToPtr(1250.50),
		CostDate:    "2025-08-12",
	})
	require.NoError(t, err)
	assert.Equal(t, 1250.50, result.Amount)
	assert.Equal(t, constants.CostTypeFuel, result.CostType)
}

func TestCostCreate_RejectedForRetired(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	equipment := entities.Equipment{
		ID:        uuid.New(),
		CompanyID: testCompanyID,
		Name:      "Списанный кран",
		Status:    constants.EquipmentStatusRetired,
	}
	equipmentRepo.put(equipment)
	svc := NewCostService(newFakeCostRepo(), equipmentRepo, newFakeCacheRepo(), 10*time.Minute, zap.NewNop())

	_, err := svc.Create(testCtx(), dto.CreateCostDTO{
		EquipmentID: equipment.ID.String(),
		CostType:    constants.CostTypeRepair,
		Amount:      utils.ToPtr(100.0),
		CostDate:    "2025-08-12",
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestCostSummary_AggregatesAndCaches(t *testing.T) {
	_, cacheRepo, svc, equipment := newCostFixture()
	jobID := uuid.New().String()

	for _, payload := range []dto.CreateCostDTO{
		{EquipmentID: equipment.ID.String(), CostType: constants.CostTypeFuel, Amount: utils.ToPtr(100.0), CostDate: "2025-08-01", JobID: &jobID},
		{EquipmentID: equipment.ID.String(), CostType: constants.CostTypeFuel, Amount: utils.ToPtr(50.0), CostDate: "2025-08-02", JobID: &jobID},
		{EquipmentID: equipment.ID.String(), CostType: constants.CostTypeRepair, Amount: utils.ToPtr(300.0), CostDate: "2025-08-03"},
	} {
		_, err := svc.Create(testCtx(), payload)
		require.NoError(t, err)
	}

	summary, err := svc.GetSummary(testCtx(), equipment.ID)
	require.NoError(t, err)
	assert.InDelta(t, 450.0, summary.Total, 0.001)

	byType := make(map[string]float64)
	for _, row := range summary.ByType {
		byType[row.CostType] = row.Total
	}
	assert.InDelta(t, 150.0, byType[constants.CostTypeFuel], 0.001)
	assert.InDelta(t, 300.0, byType[constants.CostTypeRepair], 0.001)

	var jobTotal, unassignedTotal float64
	for _, row := range summary.ByJob {
		if row.JobID != nil {
			jobTotal += row.Total
		} else {
			unassignedTotal += row.Total
		}
	}
	assert.InDelta(t, 150.0, jobTotal, 0.001)
	assert.InDelta(t, 300.0, unassignedTotal, 0.001)

	assert.Equal(t, 1, cacheRepo.sets, "сводка должна закешироваться")

	// Повторный запрос идёт из кеша.
	again, err := svc.GetSummary(testCtx(), equipment.ID)
	require.NoError(t, err)
	assert.InDelta(t, summary.Total, again.Total, 0.001)
	assert.Equal(t, 1, cacheRepo.sets)
}

func TestCostWrite_InvalidatesSummaryCache(t *testing.T) {
	_, cacheRepo, svc, equipment := newCostFixture()

	created, err := svc.Create(testCtx(), dto.CreateCostDTO{
		EquipmentID: equipment.ID.String(),
		CostType:    constants.CostTypeFuel,
		Amount:      utils.ToPtr(100.0),
		CostDate:    "2025-08-01",
	})
	require.NoError(t, err)

	_, err = svc.GetSummary(testCtx(), equipment.ID)
	require.NoError(t, err)
	require.Contains(t, cacheRepo.values, costSummaryCacheKey(testCompanyID, equipment.ID))

	// Корректирующая правка сбрасывает кеш.
	_, err = svc.Update(testCtx(), uuid.MustParse(created.ID), dto.UpdateCostDTO{
		Amount: utils.ToPtr(120.0),
	})
	require.NoError(t, err)
	assert.NotContains(t, cacheRepo.values, costSummaryCacheKey(testCompanyID, equipment.ID))

	summary, err := svc.GetSummary(testCtx(), equipment.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, summary.Total, 0.001)
}

func TestCostUpdate_CorrectsRow(t *testing.T) {
	costRepo, _, svc, equipment := newCostFixture()

	created, err := svc.Create(testCtx(), dto.CreateCostDTO{
		EquipmentID: equipment.ID.String(),
		CostType:    constants.CostTypeOther,
		Amount:      utils.ToPtr(10.0),
		CostDate:    "2025-08-01",
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	updated, err := svc.Update(testCtx(), id, dto.UpdateCostDTO{
		CostType: utils.ToPtr(constants.CostTypeTransport),
		Notes:    utils.ToPtr("перевозка между объектами"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.CostTypeTransport, updated.CostType)

	stored, ok := costRepo.items[id]
	require.True(t, ok)
	assert.Equal(t, constants.CostTypeTransport, stored.CostType)
	assert.InDelta(t, 10.0, stored.Amount, 0.001, "сумма без правки не меняется")
}
