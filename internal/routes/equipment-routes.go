package routes

import (
	"equipment-system/internal/controllers"
	"equipment-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(api *echo.Group, equipmentService services.EquipmentServiceInterface, importService services.EquipmentImportServiceInterface, logger *zap.Logger) {
	controller := controllers.NewEquipmentController(equipmentService, importService, logger)

	group := api.Group("/equipment")
	group.POST("", controller.Create)
	group.POST("/import", controller.Import)
	group.GET("", controller.List)
	group.GET("/:id", controller.FindByID)
	group.PUT("/:id", controller.Update)
	group.PUT("/:id/status", controller.UpdateStatus)
}
