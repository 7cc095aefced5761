package main

import (
	"context"

	"equipment-system/pkg/config"
	"equipment-system/pkg/database/postgresql"
	applogger "equipment-system/pkg/logger"
	"equipment-system/pkg/service"
	"equipment-system/seeders"

	"go.uber.org/zap"
)

func main() {
	logger := applogger.NewLogger()
	cfg := config.New()

	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	if err := seeders.SeedEquipment(context.Background(), pool); err != nil {
		logger.Fatal("сидирование не удалось", zap.Error(err))
	}
	logger.Info("демо-парк оборудования создан",
		zap.String("company_id", seeders.DemoCompanyID.String()))

	// Токен под демо-компанию, чтобы сразу ходить в API локально.
	jwtService := service.NewJWTService(cfg.JWT.SecretKey, logger)
	token, err := jwtService.GenerateToken(seeders.DemoUserID, seeders.DemoCompanyID, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Fatal("не удалось выпустить локальный токен", zap.Error(err))
	}
	logger.Info("токен для локальных запросов", zap.String("token", token))
}
