package withdrawal_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/common/code"
	coreWithdrawal "github.com/agrosilo/silosys/pkg/core/withdrawal"
	withdrawalImpl "github.com/agrosilo/silosys/pkg/core/withdrawal/withdrawal"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

func ptr[T any](v T) *T { return &v }

func setupService(t *testing.T) (coreWithdrawal.Service, context.Context, *model.Warehouse, *model.User) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))

	user := &model.User{Name: "joao", Email: "joao@fazenda.br", PasswordHash: "x"}
	require.NoError(t, db.DB().DBIns().Create(user).Error)
	warehouse := &model.Warehouse{OwnerID: user.ID, Name: "silo", Capacity: 1000}
	require.NoError(t, db.DB().DBIns().Create(warehouse).Error)

	// 50 kg of milho in stock
	addition := &model.Addition{WarehouseID: warehouse.ID, GrainID: 1, OwnerID: user.ID, GrossWeight: 50}
	require.NoError(t, db.DB().DBIns().Create(addition).Error)

	return withdrawalImpl.New(), auth.WithUser(ctx, user), warehouse, user
}

func TestCreateWithdrawal(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	resp, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(40)),
		TareWeight:  ptr(int64(10)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), resp.NetQuantity)
	assert.Equal(t, "milho", resp.GrainName)
}

func TestCreateWithdrawalOverStock(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	_, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(51)),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, code.InsufficientStock)
	assert.Contains(t, err.Error(), "available 50 kg")

	// draining the stock exactly is allowed
	_, err = svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(50)),
	})
	require.NoError(t, err)
}

func TestCreateWithdrawalUnweighed(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	// a scheduled load with no weights yet does not touch the stock
	resp, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.NetQuantity)
	assert.Nil(t, resp.GrossWeight)
}

func TestCreateWithdrawalGrainConflict(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	_, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     2,
	})
	assert.ErrorIs(t, err, code.GrainConflict)
}

func TestCreateWithdrawalContractRef(t *testing.T) {
	svc, ctx, w, user := setupService(t)

	contract := &model.Contract{
		OwnerID:  user.ID,
		Company:  "coop",
		GrainID:  1,
		DueDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Value:    1000,
		Quantity: 40,
	}
	require.NoError(t, db.DB().DBIns().Create(contract).Error)

	resp, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		ContractID:  &contract.ID,
		GrossWeight: ptr(int64(10)),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ContractID)
	assert.Equal(t, contract.ID, *resp.ContractID)

	_, err = svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		ContractID:  ptr(int64(999)),
	})
	assert.ErrorIs(t, err, code.ContractRefInvalid)
}

func TestCreateWithdrawalForeignContract(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	foreign := &model.Contract{
		OwnerID:  999,
		Company:  "other coop",
		GrainID:  1,
		DueDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Value:    1000,
		Quantity: 40,
	}
	require.NoError(t, db.DB().DBIns().Create(foreign).Error)

	_, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		ContractID:  &foreign.ID,
	})
	assert.ErrorIs(t, err, code.ContractRefInvalid)
}

func TestUpdateWithdrawalExcludesOwnRow(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	created, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(30)),
	})
	require.NoError(t, err)

	// raising the same withdrawal to the full 50 must not see its old 30
	resp, err := svc.Update(ctx, created.ID, &coreWithdrawal.UpdateReq{
		GrossWeight: ptr(int64(50)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.NetQuantity)

	_, err = svc.Update(ctx, created.ID, &coreWithdrawal.UpdateReq{
		GrossWeight: ptr(int64(51)),
	})
	assert.ErrorIs(t, err, code.InsufficientStock)
}

func TestUpdateWithdrawalPlateOnlySkipsCeiling(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	created, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(50)),
	})
	require.NoError(t, err)

	// retire the inbound load the withdrawal drew from; the stored
	// withdrawal now exceeds what is left, which is a legal state
	require.NoError(t, db.DB().DBIns().Model(&model.Addition{}).
		Where("warehouse_id = ?", w.ID).Update("deleted_at", time.Now()).Error)

	// editing a field with no bearing on stock must still go through
	resp, err := svc.Update(ctx, created.ID, &coreWithdrawal.UpdateReq{
		Plate: ptr("XYZ9A87"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Plate)
	assert.Equal(t, "XYZ9A87", *resp.Plate)

	// touching a weight re-checks against the drained stock
	_, err = svc.Update(ctx, created.ID, &coreWithdrawal.UpdateReq{
		GrossWeight: ptr(int64(50)),
	})
	assert.ErrorIs(t, err, code.InsufficientStock)
}

func TestDeleteWithdrawalRestoresStock(t *testing.T) {
	svc, ctx, w, _ := setupService(t)

	created, err := svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(50)),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(1)),
	})
	assert.ErrorIs(t, err, code.InsufficientStock)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Create(ctx, &coreWithdrawal.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(50)),
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, code.WithdrawalNotFound)
}
