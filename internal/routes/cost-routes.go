package routes

import (
	"equipment-system/internal/controllers"
	"equipment-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runCostRouter(api *echo.Group, costService services.CostServiceInterface, logger *zap.Logger) {
	controller := controllers.NewCostController(costService, logger)

	group := api.Group("/costs")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/summary", controller.Summary)
	group.GET("/:id", controller.FindByID)
	group.PUT("/:id", controller.Update)
}
