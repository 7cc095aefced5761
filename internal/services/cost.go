package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CostServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateCostDTO) (*dto.CostDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.CostDTO, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.CostDTO, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateCostDTO) (*dto.CostDTO, error)
	GetSummary(ctx context.Context, equipmentID uuid.UUID) (*dto.CostSummaryDTO, error)
}

type CostService struct {
	costRepo      repositories.CostRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	summaryTTL    time.Duration
	logger        *zap.Logger
}

func NewCostService(
	costRepo repositories.CostRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	summaryTTL time.Duration,
	logger *zap.Logger,
) CostServiceInterface {
	return &CostService{
		costRepo:      costRepo,
		equipmentRepo: equipmentRepo,
		cacheRepo:     cacheRepo,
		summaryTTL:    summaryTTL,
		logger:        logger,
	}
}

func costSummaryCacheKey(companyID, equipmentID uuid.UUID) string {
	return fmt.Sprintf("cost_summary:%s:%s", companyID, equipmentID)
}

// Create добавляет запись в журнал затрат. Журнал append-only:
// удаления нет, ошибки исправляются корректирующим обновлением.
func (s *CostService) Create(ctx context.Context, payload dto.CreateCostDTO) (*dto.CostDTO, error) {
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
	vendorID, err := parseUUIDPtr(payload.VendorID)
	if err != nil {
		return nil, err
	}
	costDate, err := utils.ParseDate(payload.CostDate)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, companyID, equipmentID)
	if err != nil {
		return nil, err
	}
	if constants.IsTerminalEquipmentStatus(equipment.Status) {
		return nil, apperrors.NewConflictError("оборудование списано, журнал затрат по нему закрыт")
	}

	event := &entities.CostEvent{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EquipmentID: equipmentID,
		JobID:       jobID,
		CostType:    payload.CostType,
		Amount:      *payload.Amount,
		CostDate:    costDate,
		Description: payload.Description,
		VendorID:    vendorID,
		ReceiptRef:  payload.ReceiptRef,
		Notes:       payload.Notes,
	}

	if err := s.costRepo.Create(ctx, event); err != nil {
		s.logger.Error("не удалось создать затрату", zap.Error(err))
		return nil, err
	}
	s.invalidateSummary(ctx, companyID, equipmentID)

	return dto.CostToDTO(event), nil
}

func (s *CostService) List(ctx context.Context, filter types.Filter) ([]dto.CostDTO, uint64, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.costRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.CostListToDTO(items), total, nil
}

func (s *CostService) FindByID(ctx context.Context, id uuid.UUID) (*dto.CostDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.costRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, notFoundAs(err, "запись о затратах не найдена")
	}
	return dto.CostToDTO(event), nil
}

// Update — корректирующая правка строки журнала.
func (s *CostService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateCostDTO) (*dto.CostDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.costRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if payload.JobID != nil {
		jobID, err := parseUUIDPtr(payload.JobID)
		if err != nil {
			return nil, err
		}
		event.JobID = jobID
	}
	if payload.CostType != nil {
		event.CostType = *payload.CostType
	}
	if payload.Amount != nil {
		event.Amount = *payload.Amount
	}
	if payload.CostDate != nil {
		costDate, err := utils.ParseDate(*payload.CostDate)
		if err != nil {
			return nil, err
		}
		event.CostDate = costDate
	}
	if payload.Description != nil {
		event.Description = payload.Description
	}
	if payload.VendorID != nil {
		vendorID, err := parseUUIDPtr(payload.VendorID)
		if err != nil {
			return nil, err
		}
		event.VendorID = vendorID
	}
	if payload.ReceiptRef != nil {
		event.ReceiptRef = payload.ReceiptRef
	}
	if payload.Notes != nil {
		event.Notes = payload.Notes
	}

	if err := s.costRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx, companyID, event.EquipmentID)

	return dto.CostToDTO(event), nil
}

// GetSummary отдаёт агрегаты затрат по единице оборудования с
// read-through кешем: итоги считаются в БД, результат живёт в Redis до
// истечения TTL или первой записи по этому оборудованию.
func (s *CostService) GetSummary(ctx context.Context, equipmentID uuid.UUID) (*dto.CostSummaryDTO, error) {
	companyID, err := utils.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	key := costSummaryCacheKey(companyID, equipmentID)
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && cached != "" {
		var summary dto.CostSummaryDTO
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	if _, err := s.equipmentRepo.FindByID(ctx, companyID, equipmentID); err != nil {
		return nil, err
	}

	byType, err := s.costRepo.SummarizeByType(ctx, companyID, equipmentID)
	if err != nil {
		return nil, err
	}
	byJob, err := s.costRepo.SummarizeByJob(ctx, companyID, equipmentID)
	if err != nil {
		return nil, err
	}

	summary := &dto.CostSummaryDTO{
		ByType: make([]dto.CostSummaryRowDTO, 0, len(byType)),
		ByJob:  make([]dto.CostSummaryRowDTO, 0, len(byJob)),
	}
	for _, row := range byType {
		summary.Total += row.Total
		summary.ByType = append(summary.ByType, dto.CostSummaryRowDTO{
			CostType: row.Key,
			Total:    row.Total,
			Count:    row.Count,
		})
	}
	for _, row := range byJob {
		entry := dto.CostSummaryRowDTO{Total: row.Total, Count: row.Count}
		if row.Key != "unassigned" {
			entry.JobID = utils.ToPtr(row.Key)
		}
		summary.ByJob = append(summary.ByJob, entry)
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.cacheRepo.Set(ctx, key, payload, s.summaryTTL); err != nil {
			s.logger.Warn("не удалось записать агрегаты в кеш", zap.Error(err))
		}
	}
	return summary, nil
}

// invalidateSummary сбрасывает кеш агрегатов после записи в журнал.
// Ошибка кеша не фатальна: данные в БД первичны.
func (s *CostService) invalidateSummary(ctx context.Context, companyID, equipmentID uuid.UUID) {
	if err := s.cacheRepo.Del(ctx, costSummaryCacheKey(companyID, equipmentID)); err != nil {
		s.logger.Warn("не удалось сбросить кеш агрегатов",
			zap.String("equipment_id", equipmentID.String()), zap.Error(err))
	}
}
