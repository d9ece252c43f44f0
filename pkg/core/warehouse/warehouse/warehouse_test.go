package warehouse_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	coreWarehouse "github.com/agrosilo/silosys/pkg/core/warehouse"
	warehouseImpl "github.com/agrosilo/silosys/pkg/core/warehouse/warehouse"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

func ptr[T any](v T) *T { return &v }

func setupService(t *testing.T) (coreWarehouse.Service, context.Context, *model.User) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))

	user := &model.User{Name: "joao", Email: "joao@fazenda.br", PasswordHash: "x"}
	require.NoError(t, db.DB().DBIns().Create(user).Error)

	return warehouseImpl.New(), auth.WithUser(ctx, user), user
}

func TestWarehouseDerivedFields(t *testing.T) {
	svc, ctx, user := setupService(t)

	created, err := svc.Create(ctx, &coreWarehouse.CreateReq{Name: "silo A", Capacity: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.Stock)
	assert.Nil(t, created.GrainID)

	addition := &model.Addition{WarehouseID: created.ID, GrainID: 2, OwnerID: user.ID, GrossWeight: 120, TareWeight: 20}
	require.NoError(t, db.DB().DBIns().Create(addition).Error)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Stock)
	require.NotNil(t, got.GrainID)
	assert.Equal(t, int64(2), *got.GrainID)
}

func TestWarehouseUpdate(t *testing.T) {
	svc, ctx, _ := setupService(t)

	created, err := svc.Create(ctx, &coreWarehouse.CreateReq{Name: "silo A", Capacity: 1000})
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, &coreWarehouse.UpdateReq{Capacity: ptr(int64(2000))})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), resp.Capacity)
	assert.Equal(t, "silo A", resp.Name)

	_, err = svc.Update(ctx, created.ID, &coreWarehouse.UpdateReq{})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestWarehouseListAndDelete(t *testing.T) {
	svc, ctx, _ := setupService(t)

	created, err := svc.Create(ctx, &coreWarehouse.CreateReq{Name: "silo A", Capacity: 1000})
	require.NoError(t, err)

	page := &common.PageReq{}
	page.Normalize()
	list, err := svc.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, code.WarehouseNotFound)
}
