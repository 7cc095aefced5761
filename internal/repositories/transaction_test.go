package repositories

import (
	"context"
	"net/http"
	"testing"

	apperrors "equipment-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Хранилище недоступно: ошибка транзакции должна быть отличима от
// прочих 500 — клиент вправе повторить операцию целиком.
func TestRunInTransaction_BeginFailureIsRetryable(t *testing.T) {
	pool, err := pgxpool.New(context.Background(),
		"postgres://postgres@127.0.0.1:1/equipment-system?connect_timeout=1")
	require.NoError(t, err)
	defer pool.Close()

	manager := NewTxManager(pool)
	err = manager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		t.Fatal("fn не должна вызываться без открытой транзакции")
		return nil
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Contains(t, httpErr.Message, "повторите операцию")
}
