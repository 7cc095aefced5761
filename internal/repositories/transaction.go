package repositories

import (
	"context"
	"fmt"

	apperrors "equipment-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{pool: pool}
}

// RunInTransaction выполняет fn в рамках одной транзакции: commit при
// успехе, rollback при ошибке или панике. Вся сцепка "записать
// триггерную запись + обновить статус оборудования" обязана проходить
// через один такой вызов.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewTransactionError(fmt.Errorf("не удалось начать транзакцию: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				err = apperrors.NewTransactionError(fmt.Errorf("ошибка при коммите транзакции: %w", err))
			}
		}
	}()

	err = fn(tx)
	return err
}
