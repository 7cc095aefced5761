package services

import (
	"context"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/pkg/constants"
	"equipment-system/pkg/types"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	Register(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentDTO, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Register создаёт карточку оборудования. Новая единица всегда
// появляется в статусе available, тип и вид владения подставляются по
// умолчанию, если не заданы.
func (s *EquipmentService) Register(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	purchaseDate, err := utils.ParseDatePtr(payload.PurchaseDate)
	if err != nil {
		return nil, err
	}

	equipmentType := payload.EquipmentType
	if equipmentType == "" {
		equipmentType = constants.EquipmentTypeOther
	}
	ownershipType := payload.OwnershipType
	if ownershipType == "" {
		ownershipType = constants.OwnershipOwned
	}

	equipment := &entities.Equipment{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          payload.Name,
		Description:   payload.Description,
		EquipmentType: equipmentType,
		Status:        constants.EquipmentStatusAvailable,
		OwnershipType: ownershipType,
		Make:          payload.Make,
		Model:         payload.Model,
		SerialNumber:  payload.SerialNumber,
		Year:          payload.Year,
		PurchaseDate:  purchaseDate,
		PurchasePrice: payload.PurchasePrice,
		CurrentValue:  payload.CurrentValue,
		DailyRate:     payload.DailyRate,
		Location:      payload.Location,
		Notes:         payload.Notes,
		PhotoRefs:     payload.PhotoRefs,
	}

	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		s.logger.Error("не удалось создать оборудование", zap.Error(err))
		return nil, err
	}
	s.logger.Info("оборудование зарегистрировано",
		zap.String("equipment_id", equipment.ID.String()),
		zap.String("name", equipment.Name))

	created, err := s.equipmentRepo.FindByID(ctx, companyID, equipment.ID)
	if err != nil {
		return nil, err
	}
	return dto.EquipmentToDTO(created), nil
}

func (s *EquipmentService) List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.equipmentRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.EquipmentListToDTO(items), total, nil
}

func (s *EquipmentService) FindByID(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, notFoundAs(err, "оборудование не найдено")
	}
	return dto.EquipmentToDTO(equipment), nil
}

// Update накладывает частичный патч: меняются только присланные поля.
// Статус этой операцией не трогается.
func (s *EquipmentService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		equipment.Name = *payload.Name
	}
	if payload.Description != nil {
		equipment.Description = payload.Description
	}
	if payload.EquipmentType != nil {
		equipment.EquipmentType = *payload.EquipmentType
	}
	if payload.OwnershipType != nil {
		equipment.OwnershipType = *payload.OwnershipType
	}
	if payload.Make != nil {
		equipment.Make = payload.Make
	}
	if payload.Model != nil {
		equipment.Model = payload.Model
	}
	if payload.SerialNumber != nil {
		equipment.SerialNumber = payload.SerialNumber
	}
	if payload.Year != nil {
		equipment.Year = payload.Year
	}
	if payload.PurchaseDate != nil {
		purchaseDate, err := utils.ParseDatePtr(payload.PurchaseDate)
		if err != nil {
			return nil, err
		}
		equipment.PurchaseDate = purchaseDate
	}
	if payload.PurchasePrice != nil {
		equipment.PurchasePrice = *payload.PurchasePrice
	}
	if payload.CurrentValue != nil {
		equipment.CurrentValue = *payload.CurrentValue
	}
	if payload.DailyRate != nil {
		equipment.DailyRate = *payload.DailyRate
	}
	if payload.Location != nil {
		equipment.Location = payload.Location
	}
	if payload.Notes != nil {
		equipment.Notes = payload.Notes
	}
	if payload.PhotoRefs != nil {
		equipment.PhotoRefs = payload.PhotoRefs
	}

	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		s.logger.Error("не удалось обновить оборудование",
			zap.String("equipment_id", id.String()), zap.Error(err))
		return nil, err
	}

	updated, err := s.equipmentRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return dto.EquipmentToDTO(updated), nil
}

// UpdateStatus — ручной перевод статуса. Допустимые цели ограничены на
// уровне DTO (available, out_of_service, retired), легальность перехода
// проверяется по таблице под блокировкой строки.
func (s *EquipmentService) UpdateStatus(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var equipment *entities.Equipment
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err = s.equipmentRepo.FindForUpdateInTx(ctx, tx, companyID, id)
		if err != nil {
			return err
		}
		return changeEquipmentStatusInTx(ctx, tx, s.equipmentRepo, equipment, payload.Status, constants.EventManual)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("статус оборудования изменён вручную",
		zap.String("equipment_id", id.String()),
		zap.String("status", payload.Status))
	return dto.EquipmentToDTO(equipment), nil
}
