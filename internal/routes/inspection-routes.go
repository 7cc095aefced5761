package routes

import (
	"equipment-system/internal/controllers"
	"equipment-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runInspectionRouter(api *echo.Group, inspectionService services.InspectionServiceInterface, logger *zap.Logger) {
	controller := controllers.NewInspectionController(inspectionService, logger)

	group := api.Group("/inspections")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.FindByID)
	group.PUT("/:id", controller.Update)
}
