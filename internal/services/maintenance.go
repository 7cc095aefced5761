package services

import (
	"context"
	"fmt"
	"math"
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

// Допуск сверки сумм: копейки, потерянные на округлении, не считаются
// расхождением.
const costReconcileTolerance = 0.01

type MaintenanceServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, []string, error)
	List(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, []string, error)
}

type MaintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	assignmentRepo  repositories.AssignmentRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	txManager       repositories.TxManagerInterface
	logger          *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		assignmentRepo:  assignmentRepo,
		equipmentRepo:   equipmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// reconcileWarnings — сверка total_cost с parts_cost + labor_cost.
// Расхождение не блокирует запись: суммы часто вносят по мере
// поступления счетов. Клиент получает предупреждение.
func reconcileWarnings(record *entities.MaintenanceRecord) []string {
	sum := record.PartsCost + record.LaborCost
	if record.TotalCost == 0 || math.Abs(record.TotalCost-sum) <= costReconcileTolerance {
		return nil
	}
	return []string{fmt.Sprintf(
		"итоговая стоимость %.2f не сходится с суммой запчастей и работ %.2f", record.TotalCost, sum)}
}

// Create планирует обслуживание. По умолчанию запись создаётся в
// статусе scheduled и оборудование не трогает; создание сразу в
// in_progress проходит те же проверки, что и старт работ.
func (s *MaintenanceService) Create(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, []string, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	equipmentID, err := uuid.Parse(payload.EquipmentID)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("некорректный идентификатор оборудования", nil)
	}
	scheduledDate, err := utils.ParseDatePtr(payload.ScheduledDate)
	if err != nil {
		return nil, nil, err
	}
	performedBy, err := parseUUIDPtr(payload.PerformedBy)
	if err != nil {
		return nil, nil, err
	}

	status := payload.Status
	if status == "" {
		status = constants.MaintenanceStatusScheduled
	}

	record := &entities.MaintenanceRecord{
		ID:              uuid.New(),
		CompanyID:       companyID,
		EquipmentID:     equipmentID,
		MaintenanceType: payload.MaintenanceType,
		Status:          status,
		Title:           payload.Title,
		Description:     payload.Description,
		ScheduledDate:   scheduledDate,
		PerformedBy:     performedBy,
		ServiceProvider: payload.ServiceProvider,
		PartsCost:       payload.PartsCost,
		LaborCost:       payload.LaborCost,
		TotalCost:       payload.TotalCost,
		Notes:           payload.Notes,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, equipmentID)
		if err != nil {
			return err
		}
		if constants.IsTerminalEquipmentStatus(equipment.Status) {
			return apperrors.NewConflictError("оборудование списано и не подлежит обслуживанию")
		}

		if record.Status == constants.MaintenanceStatusInProgress {
			if err := s.startMaintenanceInTx(ctx, tx, equipment); err != nil {
				return err
			}
		}
		return s.maintenanceRepo.CreateInTx(ctx, tx, record)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("обслуживание запланировано",
		zap.String("maintenance_id", record.ID.String()),
		zap.String("equipment_id", equipmentID.String()),
		zap.String("status", record.Status))
	return dto.MaintenanceToDTO(record, time.Now()), reconcileWarnings(record), nil
}

// startMaintenanceInTx проверяет, что по оборудованию нет активных
// назначений, и переводит его в maintenance. Обслуживание при активном
// назначении запрещено: сначала нужно закрыть назначение.
func (s *MaintenanceService) startMaintenanceInTx(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	active, err := s.assignmentRepo.ListActiveForEquipmentInTx(ctx, tx, equipment.CompanyID, equipment.ID, uuid.Nil)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return apperrors.NewConflictError(
			"по оборудованию есть активное назначение, сначала закройте его")
	}
	return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment,
		constants.EquipmentStatusMaintenance, constants.EventMaintenanceStarted)
}

func (s *MaintenanceService) List(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, uint64, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.maintenanceRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.MaintenanceListToDTO(items, time.Now()), total, nil
}

func (s *MaintenanceService) FindByID(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.maintenanceRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, notFoundAs(err, "запись обслуживания не найдена")
	}
	return dto.MaintenanceToDTO(record, time.Now()), nil
}

// Update правит запись и проводит переходы статусов работ. Переходы,
// затрагивающие оборудование (старт и завершение работ), выполняются
// под блокировкой его строки.
func (s *MaintenanceService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, []string, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	var record *entities.MaintenanceRecord
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		record, err = s.maintenanceRepo.FindByIDInTx(ctx, tx, companyID, id)
		if err != nil {
			return err
		}

		prevStatus := record.Status
		if payload.Status != nil && *payload.Status != prevStatus {
			if prevStatus == constants.MaintenanceStatusCompleted || prevStatus == constants.MaintenanceStatusCancelled {
				return apperrors.NewConflictError("запись обслуживания уже закрыта")
			}
			record.Status = *payload.Status
		}

		if payload.Title != nil {
			record.Title = *payload.Title
		}
		if payload.Description != nil {
			record.Description = payload.Description
		}
		if payload.ScheduledDate != nil {
			scheduledDate, err := utils.ParseDatePtr(payload.ScheduledDate)
			if err != nil {
				return err
			}
			record.ScheduledDate = scheduledDate
		}
		if payload.CompletedDate != nil {
			completedDate, err := utils.ParseDatePtr(payload.CompletedDate)
			if err != nil {
				return err
			}
			record.CompletedDate = completedDate
		}
		if payload.PerformedBy != nil {
			performedBy, err := parseUUIDPtr(payload.PerformedBy)
			if err != nil {
				return err
			}
			record.PerformedBy = performedBy
		}
		if payload.ServiceProvider != nil {
			record.ServiceProvider = payload.ServiceProvider
		}
		if payload.PartsCost != nil {
			record.PartsCost = *payload.PartsCost
		}
		if payload.LaborCost != nil {
			record.LaborCost = *payload.LaborCost
		}
		if payload.TotalCost != nil {
			record.TotalCost = *payload.TotalCost
		}
		if payload.Notes != nil {
			record.Notes = payload.Notes
		}

		switch {
		case record.Status == constants.MaintenanceStatusInProgress && prevStatus != constants.MaintenanceStatusInProgress:
			equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, record.EquipmentID)
			if err != nil {
				return err
			}
			if err := s.startMaintenanceInTx(ctx, tx, equipment); err != nil {
				return err
			}

		case record.Status == constants.MaintenanceStatusCompleted && prevStatus != constants.MaintenanceStatusCompleted:
			if record.CompletedDate == nil {
				today := time.Now().Truncate(24 * time.Hour)
				record.CompletedDate = &today
			}
			if err := s.finishMaintenanceInTx(ctx, tx, companyID, record.EquipmentID); err != nil {
				return err
			}

		case record.Status == constants.MaintenanceStatusCancelled && prevStatus == constants.MaintenanceStatusInProgress:
			if err := s.finishMaintenanceInTx(ctx, tx, companyID, record.EquipmentID); err != nil {
				return err
			}
		}

		return s.maintenanceRepo.UpdateInTx(ctx, tx, record)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("запись обслуживания обновлена",
		zap.String("maintenance_id", id.String()),
		zap.String("status", record.Status))
	return dto.MaintenanceToDTO(record, time.Now()), reconcileWarnings(record), nil
}

// finishMaintenanceInTx возвращает оборудование из maintenance: в
// assigned, если по нему осталось активное назначение, иначе в
// available. Если другое событие уже увело оборудование из
// maintenance, ничего не делает.
func (s *MaintenanceService) finishMaintenanceInTx(ctx context.Context, tx pgx.Tx, companyID, equipmentID uuid.UUID) error {
	equipment, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, equipmentID)
	if err != nil {
		return err
	}
	if equipment.Status != constants.EquipmentStatusMaintenance {
		return nil
	}

	active, err := s.assignmentRepo.ListActiveForEquipmentInTx(ctx, tx, companyID, equipmentID, uuid.Nil)
	if err != nil {
		return err
	}
	next := constants.EquipmentStatusAvailable
	if len(active) > 0 {
		next = constants.EquipmentStatusAssigned
	}
	return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment,
		next, constants.EventMaintenanceCompleted)
}
