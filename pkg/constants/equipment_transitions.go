package constants

// StatusEvent — событие, которое инициирует смену статуса оборудования.
// Статус меняют четыре независимых писателя (назначения, обслуживание,
// инспекции, ручные правки), поэтому легальность перехода проверяется
// по единой таблице, а не в каждом компоненте отдельно.
type StatusEvent string

const (
	EventAssignmentCreated    StatusEvent = "assignment_created"
	EventAssignmentClosed     StatusEvent = "assignment_closed"
	EventMaintenanceStarted   StatusEvent = "maintenance_started"
	EventMaintenanceCompleted StatusEvent = "maintenance_completed"
	EventInspectionFailed     StatusEvent = "inspection_failed"
	EventManual               StatusEvent = "manual"
)

type statusTransition struct {
	From  string
	To    string
	Event StatusEvent
}

var allowedEquipmentTransitions = map[statusTransition]struct{}{
	// Назначения
	{EquipmentStatusAvailable, EquipmentStatusAssigned, EventAssignmentCreated}: {},
	{EquipmentStatusAssigned, EquipmentStatusAvailable, EventAssignmentClosed}:  {},

	// Обслуживание. Старт при активном назначении запрещён политикой:
	// статус assigned в таблице отсутствует намеренно.
	{EquipmentStatusAvailable, EquipmentStatusMaintenance, EventMaintenanceStarted}:    {},
	{EquipmentStatusOutOfService, EquipmentStatusMaintenance, EventMaintenanceStarted}: {},
	{EquipmentStatusMaintenance, EquipmentStatusAvailable, EventMaintenanceCompleted}:  {},
	{EquipmentStatusMaintenance, EquipmentStatusAssigned, EventMaintenanceCompleted}:   {},

	// Провал инспекции по безопасности
	{EquipmentStatusAvailable, EquipmentStatusOutOfService, EventInspectionFailed}:   {},
	{EquipmentStatusAssigned, EquipmentStatusOutOfService, EventInspectionFailed}:    {},
	{EquipmentStatusMaintenance, EquipmentStatusOutOfService, EventInspectionFailed}: {},

	// Ручные переводы
	{EquipmentStatusAvailable, EquipmentStatusOutOfService, EventManual}:   {},
	{EquipmentStatusAssigned, EquipmentStatusOutOfService, EventManual}:    {},
	{EquipmentStatusMaintenance, EquipmentStatusOutOfService, EventManual}: {},
	{EquipmentStatusOutOfService, EquipmentStatusAvailable, EventManual}:   {},
	{EquipmentStatusAvailable, EquipmentStatusRetired, EventManual}:        {},
	{EquipmentStatusAssigned, EquipmentStatusRetired, EventManual}:         {},
	{EquipmentStatusMaintenance, EquipmentStatusRetired, EventManual}:      {},
	{EquipmentStatusOutOfService, EquipmentStatusRetired, EventManual}:     {},
}

// CanTransitionEquipmentStatus проверяет легальность перехода по таблице.
// Переход "в тот же статус" трактуется как no-op и всегда разрешён —
// повторное применение события не должно давать побочных эффектов.
func CanTransitionEquipmentStatus(from, to string, event StatusEvent) bool {
	if from == to {
		return true
	}
	_, ok := allowedEquipmentTransitions[statusTransition{From: from, To: to, Event: event}]
	return ok
}
