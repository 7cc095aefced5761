package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionEquipmentStatus(t *testing.T) {
	testCases := []struct {
		name    string
		from    string
		to      string
		event   StatusEvent
		allowed bool
	}{
		{"назначение переводит available в assigned", EquipmentStatusAvailable, EquipmentStatusAssigned, EventAssignmentCreated, true},
		{"закрытие назначения возвращает в available", EquipmentStatusAssigned, EquipmentStatusAvailable, EventAssignmentClosed, true},
		{"старт обслуживания из available", EquipmentStatusAvailable, EquipmentStatusMaintenance, EventMaintenanceStarted, true},
		{"старт обслуживания из out_of_service", EquipmentStatusOutOfService, EquipmentStatusMaintenance, EventMaintenanceStarted, true},
		{"старт обслуживания из assigned запрещён", EquipmentStatusAssigned, EquipmentStatusMaintenance, EventMaintenanceStarted, false},
		{"завершение обслуживания в available", EquipmentStatusMaintenance, EquipmentStatusAvailable, EventMaintenanceCompleted, true},
		{"завершение обслуживания в assigned", EquipmentStatusMaintenance, EquipmentStatusAssigned, EventMaintenanceCompleted, true},
		{"провал инспекции выводит из эксплуатации", EquipmentStatusAssigned, EquipmentStatusOutOfService, EventInspectionFailed, true},
		{"ручной возврат из out_of_service", EquipmentStatusOutOfService, EquipmentStatusAvailable, EventManual, true},
		{"ручное списание из любого статуса", EquipmentStatusMaintenance, EquipmentStatusRetired, EventManual, true},
		{"retired — терминальный статус", EquipmentStatusRetired, EquipmentStatusAvailable, EventManual, false},
		{"назначение не может перевести в retired", EquipmentStatusAvailable, EquipmentStatusRetired, EventAssignmentCreated, false},
		{"ручной перевод в assigned запрещён", EquipmentStatusAvailable, EquipmentStatusAssigned, EventManual, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransitionEquipmentStatus(tc.from, tc.to, tc.event))
		})
	}
}

func TestCanTransitionEquipmentStatus_SameStatusIsNoop(t *testing.T) {
	// Повторное применение события не должно давать ошибку.
	for _, status := range []string{
		EquipmentStatusAvailable, EquipmentStatusAssigned, EquipmentStatusMaintenance,
		EquipmentStatusOutOfService, EquipmentStatusRetired,
	} {
		assert.True(t, CanTransitionEquipmentStatus(status, status, EventManual),
			"переход %s -> %s должен быть no-op", status, status)
	}
}

func TestIsSafetyRelevantInspectionType(t *testing.T) {
	assert.True(t, IsSafetyRelevantInspectionType(InspectionTypePreUse))
	assert.True(t, IsSafetyRelevantInspectionType(InspectionTypePeriodic))
	assert.True(t, IsSafetyRelevantInspectionType(InspectionTypeSafety))
	assert.False(t, IsSafetyRelevantInspectionType(InspectionTypePostUse))
}
