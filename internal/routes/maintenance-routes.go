package routes

import (
	"equipment-system/internal/controllers"
	"equipment-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMaintenanceRouter(api *echo.Group, maintenanceService services.MaintenanceServiceInterface, logger *zap.Logger) {
	controller := controllers.NewMaintenanceController(maintenanceService, logger)

	group := api.Group("/maintenance")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.FindByID)
	group.PUT("/:id", controller.Update)
}
