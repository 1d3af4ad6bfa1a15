package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsWithdraw(t *testing.T) {
	repo := newFakeEarningsRepo()
	svc := NewEarningsService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Credit(ctx, "u1", 1000))

	bal, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal)

	bal, err = svc.Withdraw(ctx, "u1", 400)
	require.NoError(t, err)
	assert.Equal(t, int64(600), bal)

	_, err = svc.Withdraw(ctx, "u1", 601)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = svc.Withdraw(ctx, "u1", 0)
	assert.Error(t, err)
	_, err = svc.Withdraw(ctx, "u1", -5)
	assert.Error(t, err)

	// non-positive credits are ignored
	require.NoError(t, svc.Credit(ctx, "u1", 0))
	bal, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(600), bal)
}
