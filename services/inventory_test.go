package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Keyboard", 49.99, 5)

	require.NoError(t, Reserve(ctx, db, product.ID, 3))
	assert.Equal(t, 2, stockOf(t, db, product.ID))

	err := Reserve(ctx, db, product.ID, 3)
	require.Error(t, err)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
	assert.Contains(t, appErr.Message, "Keyboard")
	assert.Equal(t, 2, stockOf(t, db, product.ID), "failed reservation must not touch stock")
}

func TestReserveUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	err := Reserve(context.Background(), db, "missing", 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*apperrors.Error).Code)
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Mouse", 19.99, 1)

	require.Error(t, Reserve(context.Background(), db, product.ID, 0))
	assert.Equal(t, 1, stockOf(t, db, product.ID))
}

func TestReserveConcurrentNeverOversells(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Limited Edition", 99.0, 3)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Reserve(context.Background(), db, product.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded, "exactly the initial stock may be reserved")
	assert.Equal(t, 0, stockOf(t, db, product.ID))
}

func TestRestore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Monitor", 249.0, 4)

	require.NoError(t, Reserve(ctx, db, product.ID, 4))
	require.NoError(t, Restore(ctx, db, product.ID, 4))
	assert.Equal(t, 4, stockOf(t, db, product.ID))

	// Zero and negative restores are no-ops.
	require.NoError(t, Restore(ctx, db, product.ID, 0))
	require.NoError(t, Restore(ctx, db, product.ID, -2))
	assert.Equal(t, 4, stockOf(t, db, product.ID))
}
