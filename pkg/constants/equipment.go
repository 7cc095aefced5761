package constants

// --- СТАТУСЫ ОБОРУДОВАНИЯ (совпадают со значениями в БД) ---
const (
	EquipmentStatusAvailable    = "available"
	EquipmentStatusAssigned     = "assigned"
	EquipmentStatusMaintenance  = "maintenance"
	EquipmentStatusOutOfService = "out_of_service"
	EquipmentStatusRetired      = "retired"
)

// retired — терминальный статус: списанное оборудование нельзя
// назначать и обслуживать, строка при этом не удаляется.
func IsTerminalEquipmentStatus(status string) bool {
	return status == EquipmentStatusRetired
}

// --- ТИПЫ ОБОРУДОВАНИЯ ---
const (
	EquipmentTypeHeavyMachinery  = "heavy_machinery"
	EquipmentTypeVehicle         = "vehicle"
	EquipmentTypePowerTool       = "power_tool"
	EquipmentTypeHandTool        = "hand_tool"
	EquipmentTypeScaffolding     = "scaffolding"
	EquipmentTypeSafetyEquipment = "safety_equipment"
	EquipmentTypeMeasuring       = "measuring"
	EquipmentTypeOther           = "other"
)

// --- ВИДЫ ВЛАДЕНИЯ ---
const (
	OwnershipOwned  = "owned"
	OwnershipLeased = "leased"
	OwnershipRented = "rented"
)

// --- СТАТУСЫ НАЗНАЧЕНИЙ ---
const (
	AssignmentStatusActive    = "active"
	AssignmentStatusCompleted = "completed"
	AssignmentStatusCancelled = "cancelled"
)

// --- ОБСЛУЖИВАНИЕ ---
const (
	MaintenanceTypePreventive  = "preventive"
	MaintenanceTypeCorrective  = "corrective"
	MaintenanceTypeInspection  = "inspection"
	MaintenanceTypeCalibration = "calibration"
)

const (
	MaintenanceStatusScheduled  = "scheduled"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusOverdue    = "overdue" // только производный статус на чтении
	MaintenanceStatusCancelled  = "cancelled"
)

// --- ИНСПЕКЦИИ ---
const (
	InspectionTypePreUse   = "pre_use"
	InspectionTypePostUse  = "post_use"
	InspectionTypePeriodic = "periodic"
	InspectionTypeSafety   = "safety"
)

const (
	InspectionResultPass        = "pass"
	InspectionResultFail        = "fail"
	InspectionResultConditional = "conditional"
)

// Типы инспекций, провал которых выводит оборудование из эксплуатации.
var SafetyRelevantInspectionTypes = []string{
	InspectionTypePreUse,
	InspectionTypePeriodic,
	InspectionTypeSafety,
}

func IsSafetyRelevantInspectionType(t string) bool {
	for _, s := range SafetyRelevantInspectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// --- ТИПЫ ЗАТРАТ ---
const (
	CostTypeDailyRate = "daily_rate"
	CostTypeFuel      = "fuel"
	CostTypeRepair    = "repair"
	CostTypeInsurance = "insurance"
	CostTypeTransport = "transport"
	CostTypeOther     = "other"
)
