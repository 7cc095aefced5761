package services

import (
	"context"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InspectionServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateInspectionDTO) (*dto.InspectionDTO, []string, error)
	List(ctx context.Context, filter types.Filter) ([]dto.InspectionDTO, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.InspectionDTO, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateInspectionDTO) (*dto.InspectionDTO, error)
}

type InspectionService struct {
	inspectionRepo repositories.InspectionRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewInspectionService(
	inspectionRepo repositories.InspectionRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) InspectionServiceInterface {
	return &InspectionService{
		inspectionRepo: inspectionRepo,
		equipmentRepo:  equipmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Create фиксирует результат проверки. Провал инспекции, значимой для
// безопасности, атомарно выводит оборудование из эксплуатации: запись
// инспекции и смена статуса коммитятся вместе либо не коммитятся вовсе.
func (s *InspectionService) Create(ctx context.Context, payload dto.CreateInspectionDTO) (*dto.InspectionDTO, []string, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	equipmentID, err := uuid.Parse(payload.EquipmentID)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("некорректный идентификатор оборудования", nil)
	}
	inspectionDate, err := utils.ParseDate(payload.InspectionDate)
	if err != nil {
		return nil, nil, err
	}
	inspectorID, err := parseUUIDPtr(payload.InspectorID)
	if err != nil {
		return nil, nil, err
	}

	checklist := make([]entities.ChecklistItem, 0, len(payload.Checklist))
	for _, item := range payload.Checklist {
		checklist = append(checklist, entities.ChecklistItem{
			Item:    item.Item,
			Passed:  item.Passed,
			Comment: item.Comment,
		})
	}

	inspection := &entities.Inspection{
		ID:               uuid.New(),
		CompanyID:        companyID,
		EquipmentID:      equipmentID,
		InspectionType:   payload.InspectionType,
		Result:           payload.Result,
		InspectionDate:   inspectionDate,
		InspectorID:      inspectorID,
		Checklist:        checklist,
		Deficiencies:     payload.Deficiencies,
		CorrectiveAction: payload.CorrectiveAction,
		Notes:            payload.Notes,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, equipmentID)
		if err != nil {
			return err
		}
		if constants.IsTerminalEquipmentStatus(equipment.Status) {
			return apperrors.NewConflictError("оборудование списано, инспекции по нему не проводятся")
		}

		if err := s.inspectionRepo.CreateInTx(ctx, tx, inspection); err != nil {
			return err
		}

		if inspection.Result == constants.InspectionResultFail &&
			constants.IsSafetyRelevantInspectionType(inspection.InspectionType) {
			return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment,
				constants.EquipmentStatusOutOfService, constants.EventInspectionFailed)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if inspection.Result == constants.InspectionResultConditional {
		warnings = append(warnings, "условный результат: эксплуатация допускается после устранения замечаний")
	}

	s.logger.Info("инспекция зафиксирована",
		zap.String("inspection_id", inspection.ID.String()),
		zap.String("equipment_id", equipmentID.String()),
		zap.String("result", inspection.Result))
	return dto.InspectionToDTO(inspection), warnings, nil
}

func (s *InspectionService) List(ctx context.Context, filter types.Filter) ([]dto.InspectionDTO, uint64, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.inspectionRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.InspectionListToDTO(items), total, nil
}

func (s *InspectionService) FindByID(ctx context.Context, id uuid.UUID) (*dto.InspectionDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	inspection, err := s.inspectionRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, notFoundAs(err, "инспекция не найдена")
	}
	return dto.InspectionToDTO(inspection), nil
}

// Update правит только поля устранения замечаний. Ядро записи (тип,
// результат, дата, чек-лист) после создания неизменно.
func (s *InspectionService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateInspectionDTO) (*dto.InspectionDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	inspection, err := s.inspectionRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if payload.Deficiencies != nil {
		inspection.Deficiencies = payload.Deficiencies
	}
	if payload.CorrectiveAction != nil {
		inspection.CorrectiveAction = payload.CorrectiveAction
	}
	if payload.Notes != nil {
		inspection.Notes = payload.Notes
	}

	if err := s.inspectionRepo.UpdateCorrectiveFields(ctx, inspection); err != nil {
		return nil, err
	}
	return dto.InspectionToDTO(inspection), nil
}
