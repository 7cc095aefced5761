package routes

import (
	"equipment-system/internal/controllers"
	"equipment-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAssignmentRouter(api *echo.Group, assignmentService services.AssignmentServiceInterface, logger *zap.Logger) {
	controller := controllers.NewAssignmentController(assignmentService, logger)

	group := api.Group("/assignments")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.FindByID)
	group.PUT("/:id", controller.Update)
}
