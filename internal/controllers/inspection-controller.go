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

type InspectionController struct {
	inspectionService services.InspectionServiceInterface
	logger            *zap.Logger
}

func NewInspectionController(inspectionService services.InspectionServiceInterface, logger *zap.Logger) *InspectionController {
	return &InspectionController{inspectionService: inspectionService, logger: logger}
}

func (c *InspectionController) Create(ctx echo.Context) error {
	var payload dto.CreateInspectionDTO
	if err := utils.BindStrict(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, warnings, err := c.inspectionService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponseWithWarnings(ctx, result, "Инспекция зафиксирована", http.StatusCreated, warnings)
}

func (c *InspectionController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.inspectionService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список инспекций получен", http.StatusOK, total)
}

func (c *InspectionController) FindByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewValidationError("некорректный идентификатор инспекции", nil), c.logger)
	}

	result, err := c.inspectionService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Инспекция найдена", http.StatusOK)
}

func (c *InspectionController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewValidationError("некорректный идентификатор инспекции", nil), c.logger)
	}

	var payload dto.UpdateInspectionDTO
	if err := utils.BindStrict(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.inspectionService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Инспекция обновлена", http.StatusOK)
}
