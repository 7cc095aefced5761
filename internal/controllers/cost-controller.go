package controllers

import (
	"net/http"

	"equipment-system/internal/dto"
	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CostController struct {
	costService services.CostServiceInterface
	logger      *zap.Logger
}

func NewCostController(costService services.CostServiceInterface, logger *zap.Logger) *CostController {
	return &CostController{costService: costService, logger: logger}
}

func (c *CostController) Create(ctx echo.Context) error {
	var payload dto.CreateCostDTO
	if err := utils.BindStrict(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.costService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Затрата добавлена", http.StatusCreated)
}

func (c *CostController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.costService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список затрат получен", http.StatusOK, total)
}

func (c *CostController) FindByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewValidationError("некорректный идентификатор затраты", nil), c.logger)
	}

	result, err := c.costService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Затрата найдена", http.StatusOK)
}

func (c *CostController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewValidationError("некорректный идентификатор затраты", nil), c.logger)
	}

	var payload dto.UpdateCostDTO
	if err := utils.BindStrict(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.costService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Затрата обновлена", http.StatusOK)
}

// Summary — агрегаты затрат по единице оборудования: общий итог и
// разрезы по типу затрат и объектам.
func (c *CostController) Summary(ctx echo.Context) error {
	equipmentID, err := uuid.Parse(ctx.QueryParam("equipment_id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewValidationError("не передан корректный equipment_id", nil), c.logger)
	}

	result, err := c.costService.GetSummary(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Сводка затрат получена", http.StatusOK)
}
