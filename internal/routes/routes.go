package routes

import (
	"equipment-system/internal/repositories"
	"equipment-system/internal/services"
	"equipment-system/pkg/config"
	"equipment-system/pkg/middleware"
	jwtservice "equipment-system/pkg/service"
	"equipment-system/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter собирает граф зависимостей (репозитории -> сервисы ->
// контроллеры) и вешает все маршруты на /api под auth-middleware.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {
	jwtSvc := jwtservice.NewJWTService(cfg.JWT.SecretKey, logger)
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	assignmentRepo := repositories.NewAssignmentRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn)
	inspectionRepo := repositories.NewInspectionRepository(dbConn)
	costRepo := repositories.NewCostRepository(dbConn)

	equipmentService := services.NewEquipmentService(equipmentRepo, txManager, logger)
	importService := services.NewEquipmentImportService(equipmentService, validation.New(), logger)
	assignmentService := services.NewAssignmentService(assignmentRepo, equipmentRepo, txManager, logger)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, assignmentRepo, equipmentRepo, txManager, logger)
	inspectionService := services.NewInspectionService(inspectionRepo, equipmentRepo, txManager, logger)
	costService := services.NewCostService(costRepo, equipmentRepo, cacheRepo, cfg.Cache.CostSummaryTTL, logger)

	api := e.Group("/api", authMW.Auth)

	runEquipmentRouter(api, equipmentService, importService, logger)
	runAssignmentRouter(api, assignmentService, logger)
	runMaintenanceRouter(api, maintenanceService, logger)
	runInspectionRouter(api, inspectionService, logger)
	runCostRouter(api, costService, logger)
}
