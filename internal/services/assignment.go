package services

import (
	"context"
	"time"

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

type AssignmentServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateAssignmentDTO) (*dto.AssignmentDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.AssignmentDTO, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.AssignmentDTO, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateAssignmentDTO) (*dto.AssignmentDTO, error)
}

type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) AssignmentServiceInterface {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		equipmentRepo:  equipmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Create выдаёт оборудование на объект/работнику. Проверка пересечений
// и смена статуса идут одной транзакцией под блокировкой строки
// оборудования, поэтому два конкурентных запроса не создадут
// пересекающиеся назначения.
func (s *AssignmentService) Create(ctx context.Context, payload dto.CreateAssignmentDTO) (*dto.AssignmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	equipmentID, err := uuid.Parse(payload.EquipmentID)
	if err != nil {
		return nil, apperrors.NewValidationError("некорректный идентификатор оборудования", nil)
	}
	jobID, err := parseUUIDPtr(payload.JobID)
	if err != nil {
		return nil, err
	}
	assignedTo, err := parseUUIDPtr(payload.AssignedTo)
	if err != nil {
		return nil, err
	}
	startDate, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDatePtr(payload.EndDate)
	if err != nil {
		return nil, err
	}
	// Интервал полуоткрытый, end == start означает пустое окно и допустим.
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.NewValidationError("дата окончания не может быть раньше даты начала", nil)
	}

	assignment := &entities.Assignment{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EquipmentID: equipmentID,
		JobID:       jobID,
		AssignedTo:  assignedTo,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      constants.AssignmentStatusActive,
		HoursUsed:   payload.HoursUsed,
		Notes:       payload.Notes,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, equipmentID)
		if err != nil {
			return err
		}
		switch equipment.Status {
		case constants.EquipmentStatusRetired:
			return apperrors.NewConflictError("оборудование списано и не может быть назначено")
		case constants.EquipmentStatusMaintenance:
			return apperrors.NewConflictError("оборудование находится на обслуживании")
		case constants.EquipmentStatusOutOfService:
			return apperrors.NewConflictError("оборудование выведено из эксплуатации")
		}

		active, err := s.assignmentRepo.ListActiveForEquipmentInTx(ctx, tx, companyID, equipmentID, uuid.Nil)
		if err != nil {
			return err
		}
		for i := range active {
			if active[i].Overlaps(startDate, endDate) {
				return apperrors.NewConflictError(
					"интервал пересекается с существующим назначением %s", active[i].ID)
			}
		}

		if err := s.assignmentRepo.CreateInTx(ctx, tx, assignment); err != nil {
			return err
		}
		return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment,
			constants.EquipmentStatusAssigned, constants.EventAssignmentCreated)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("назначение создано",
		zap.String("assignment_id", assignment.ID.String()),
		zap.String("equipment_id", equipmentID.String()))
	return dto.AssignmentToDTO(assignment), nil
}

func (s *AssignmentService) List(ctx context.Context, filter types.Filter) ([]dto.AssignmentDTO, uint64, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.assignmentRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.AssignmentListToDTO(items), total, nil
}

func (s *AssignmentService) FindByID(ctx context.Context, id uuid.UUID) (*dto.AssignmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, notFoundAs(err, "назначение не найдено")
	}
	return dto.AssignmentToDTO(assignment), nil
}

// Update правит или закрывает назначение. Закрытие проставляет дату
// окончания и возвращает оборудование в available, если по нему не
// осталось других активных назначений и оно не ушло в обслуживание или
// из эксплуатации другим событием. По закрытому назначению допускаются
// только корректировки часов и заметок.
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateAssignmentDTO) (*dto.AssignmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var assignment *entities.Assignment
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		assignment, err = s.assignmentRepo.FindByIDInTx(ctx, tx, companyID, id)
		if err != nil {
			return err
		}

		if assignment.Status != constants.AssignmentStatusActive {
			if payload.Status != nil || payload.StartDate != nil || payload.EndDate != nil {
				return apperrors.NewConflictError(
					"назначение закрыто: допускаются только корректировки часов и заметок")
			}
			if payload.HoursUsed != nil {
				assignment.HoursUsed = *payload.HoursUsed
			}
			if payload.Notes != nil {
				assignment.Notes = payload.Notes
			}
			return s.assignmentRepo.UpdateInTx(ctx, tx, assignment)
		}

		equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, assignment.EquipmentID)
		if err != nil {
			return err
		}

		if payload.StartDate != nil {
			startDate, err := utils.ParseDate(*payload.StartDate)
			if err != nil {
				return err
			}
			assignment.StartDate = startDate
		}
		if payload.EndDate != nil {
			endDate, err := utils.ParseDate(*payload.EndDate)
			if err != nil {
				return err
			}
			assignment.EndDate = &endDate
		}
		if assignment.EndDate != nil && assignment.EndDate.Before(assignment.StartDate) {
			return apperrors.NewValidationError("дата окончания не может быть раньше даты начала", nil)
		}
		if payload.HoursUsed != nil {
			assignment.HoursUsed = *payload.HoursUsed
		}
		if payload.Notes != nil {
			assignment.Notes = payload.Notes
		}

		closing := payload.Status != nil && *payload.Status != constants.AssignmentStatusActive
		if closing {
			assignment.Status = *payload.Status
			if assignment.EndDate == nil {
				today := time.Now().Truncate(24 * time.Hour)
				assignment.EndDate = &today
			}
		} else if payload.StartDate != nil || payload.EndDate != nil {
			// Интервал изменился у активного назначения — пересечения
			// проверяются заново.
			others, err := s.assignmentRepo.ListActiveForEquipmentInTx(ctx, tx, companyID, assignment.EquipmentID, assignment.ID)
			if err != nil {
				return err
			}
			for i := range others {
				if others[i].Overlaps(assignment.StartDate, assignment.EndDate) {
					return apperrors.NewConflictError(
						"интервал пересекается с существующим назначением %s", others[i].ID)
				}
			}
		}

		if err := s.assignmentRepo.UpdateInTx(ctx, tx, assignment); err != nil {
			return err
		}

		if closing && equipment.Status == constants.EquipmentStatusAssigned {
			remaining, err := s.assignmentRepo.ListActiveForEquipmentInTx(ctx, tx, companyID, assignment.EquipmentID, assignment.ID)
			if err != nil {
				return err
			}
			if len(remaining) == 0 {
				return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment,
					constants.EquipmentStatusAvailable, constants.EventAssignmentClosed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("назначение обновлено",
		zap.String("assignment_id", id.String()),
		zap.String("status", assignment.Status))
	return dto.AssignmentToDTO(assignment), nil
}
