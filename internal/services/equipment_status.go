package services

import (
	"context"

	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// changeEquipmentStatusInTx — единая точка смены статуса оборудования
// для всех писателей (назначения, обслуживание, инспекции, ручные
// правки). Вызывается только внутри транзакции, где строка оборудования
// уже прочитана FOR UPDATE. Переход в тот же статус — no-op.
func changeEquipmentStatusInTx(
	ctx context.Context,
	tx pgx.Tx,
	repo repositories.EquipmentRepositoryInterface,
	equipment *entities.Equipment,
	newStatus string,
	event constants.StatusEvent,
) error {
	if equipment.Status == newStatus {
		return nil
	}
	if !constants.CanTransitionEquipmentStatus(equipment.Status, newStatus, event) {
		return apperrors.NewConflictError(
			"недопустимый переход статуса оборудования: %s -> %s", equipment.Status, newStatus)
	}
	if err := repo.UpdateStatusInTx(ctx, tx, equipment.CompanyID, equipment.ID, newStatus); err != nil {
		return err
	}
	equipment.Status = newStatus
	return nil
}
