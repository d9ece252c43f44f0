package contract_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	contractRepo "github.com/agrosilo/silosys/pkg/repo/contract"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

func setupRepo(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))
	return ctx
}

func seedContract(t *testing.T, ownerID int64) *model.Contract {
	t.Helper()
	c := &model.Contract{
		OwnerID:  ownerID,
		Company:  "coop agro",
		GrainID:  1,
		DueDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Value:    150000,
		Quantity: 60000,
	}
	require.NoError(t, db.DB().DBIns().Create(c).Error)
	return c
}

func seedWithdrawal(t *testing.T, contractID *int64, gross, tare int64, deleted bool) {
	t.Helper()
	w := &model.Withdrawal{
		WarehouseID: 1,
		GrainID:     1,
		ContractID:  contractID,
		OwnerID:     1,
		GrossWeight: &gross,
		TareWeight:  &tare,
	}
	if deleted {
		now := time.Now().UTC()
		w.DeletedAt = &now
	}
	require.NoError(t, db.DB().DBIns().Create(w).Error)
}

func TestWithdrawnByContract(t *testing.T) {
	ctx := setupRepo(t)
	repo := contractRepo.New()
	c := seedContract(t, 1)

	seedWithdrawal(t, &c.ID, 12, 2, false)
	seedWithdrawal(t, &c.ID, 15, 0, false)
	seedWithdrawal(t, &c.ID, 100, 0, true)
	seedWithdrawal(t, nil, 40, 0, false)

	got, err := repo.WithdrawnByContract(ctx, []int64{c.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(25), got[c.ID])
}

func TestWithdrawnByContractNoRows(t *testing.T) {
	ctx := setupRepo(t)
	repo := contractRepo.New()
	c := seedContract(t, 1)

	got, err := repo.WithdrawnByContract(ctx, []int64{c.ID})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.WithdrawnByContract(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContractOwnerScoping(t *testing.T) {
	ctx := setupRepo(t)
	repo := contractRepo.New()
	c := seedContract(t, 1)

	_, err := repo.GetOwnedContract(ctx, 2, c.ID)
	assert.ErrorIs(t, err, code.ContractNotFound)

	got, err := repo.GetOwnedContract(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "coop agro", got.Company)
}

func TestContractSoftDelete(t *testing.T) {
	ctx := setupRepo(t)
	repo := contractRepo.New()
	c := seedContract(t, 1)

	require.NoError(t, repo.SoftDeleteContract(ctx, 1, c.ID))

	_, err := repo.GetOwnedContract(ctx, 1, c.ID)
	assert.ErrorIs(t, err, code.ContractNotFound)

	// deleting again reports not found, the row is already gone
	assert.ErrorIs(t, repo.SoftDeleteContract(ctx, 1, c.ID), code.ContractNotFound)

	// the row itself survives for audit
	var count int64
	require.NoError(t, db.DB().DBIns().Model(&model.Contract{}).Where("id = ?", c.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
