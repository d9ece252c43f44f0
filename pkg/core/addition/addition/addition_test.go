package addition_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	coreAddition "github.com/agrosilo/silosys/pkg/core/addition"
	additionImpl "github.com/agrosilo/silosys/pkg/core/addition/addition"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

func ptr[T any](v T) *T { return &v }

func setupService(t *testing.T) (coreAddition.Service, context.Context, *model.Warehouse) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))

	user := &model.User{Name: "joao", Email: "joao@fazenda.br", PasswordHash: "x"}
	require.NoError(t, db.DB().DBIns().Create(user).Error)
	warehouse := &model.Warehouse{OwnerID: user.ID, Name: "silo", Capacity: 100}
	require.NoError(t, db.DB().DBIns().Create(warehouse).Error)

	return additionImpl.New(), auth.WithUser(ctx, user), warehouse
}

func TestCreateAddition(t *testing.T) {
	svc, ctx, w := setupService(t)

	resp, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		GrossWeight: ptr(int64(80)),
		TareWeight:  ptr(int64(30)),
		Plate:       ptr("ABC1D23"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.NetQuantity)
	assert.Equal(t, "milho", resp.GrainName)
}

func TestCreateAdditionQuantityShorthand(t *testing.T) {
	svc, ctx, w := setupService(t)

	resp, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(40)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), resp.GrossWeight)
	assert.Equal(t, int64(0), resp.TareWeight)
	assert.Equal(t, int64(40), resp.NetQuantity)
}

func TestCreateAdditionOverCapacity(t *testing.T) {
	svc, ctx, w := setupService(t)

	_, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(60)),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(41)),
	})
	assert.ErrorIs(t, err, code.CapacityExceeded)

	// exactly filling the remaining space is fine
	_, err = svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(40)),
	})
	require.NoError(t, err)
}

func TestCreateAdditionGrainConflict(t *testing.T) {
	svc, ctx, w := setupService(t)

	_, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(10)),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     2,
		Quantity:    ptr(int64(10)),
	})
	assert.ErrorIs(t, err, code.GrainConflict)
}

func TestCreateAdditionUnknownPlot(t *testing.T) {
	svc, ctx, w := setupService(t)

	_, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		PlotID:      ptr(int64(999)),
		Quantity:    ptr(int64(10)),
	})
	assert.ErrorIs(t, err, code.PlotNotFound)
}

func TestCreateAdditionForeignWarehouse(t *testing.T) {
	svc, ctx, _ := setupService(t)

	other := &model.Warehouse{OwnerID: 999, Name: "foreign", Capacity: 100}
	require.NoError(t, db.DB().DBIns().Create(other).Error)

	_, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: other.ID,
		GrainID:     1,
		Quantity:    ptr(int64(10)),
	})
	assert.ErrorIs(t, err, code.WarehouseNotFound)
}

func TestUpdateAdditionExcludesOwnRow(t *testing.T) {
	svc, ctx, w := setupService(t)

	created, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(90)),
	})
	require.NoError(t, err)

	// growing 90 -> 100 only fits because the stored 90 is excluded
	resp, err := svc.Update(ctx, created.ID, &coreAddition.UpdateReq{
		GrossWeight: ptr(int64(100)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.NetQuantity)

	_, err = svc.Update(ctx, created.ID, &coreAddition.UpdateReq{
		GrossWeight: ptr(int64(101)),
	})
	assert.ErrorIs(t, err, code.CapacityExceeded)
}

func TestUpdateAdditionPlateOnlySkipsCapacity(t *testing.T) {
	svc, ctx, w := setupService(t)

	created, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(100)),
	})
	require.NoError(t, err)

	// shrinking capacity below the stored stock is allowed and leaves the
	// warehouse legally over capacity
	require.NoError(t, db.DB().DBIns().Model(&model.Warehouse{}).
		Where("id = ?", w.ID).Update("capacity", 50).Error)

	// editing a field with no bearing on stock must still go through
	resp, err := svc.Update(ctx, created.ID, &coreAddition.UpdateReq{
		Plate: ptr("XYZ9A87"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Plate)
	assert.Equal(t, "XYZ9A87", *resp.Plate)

	_, err = svc.Update(ctx, created.ID, &coreAddition.UpdateReq{
		Humidity: ptr(int64(14)),
	})
	require.NoError(t, err)

	// touching a weight re-checks against the shrunk capacity
	_, err = svc.Update(ctx, created.ID, &coreAddition.UpdateReq{
		GrossWeight: ptr(int64(100)),
	})
	assert.ErrorIs(t, err, code.CapacityExceeded)
}

func TestUpdateAdditionNoFields(t *testing.T) {
	svc, ctx, w := setupService(t)

	created, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(10)),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, &coreAddition.UpdateReq{})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestDeleteAdditionFreesCapacity(t *testing.T) {
	svc, ctx, w := setupService(t)

	created, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(100)),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(1)),
	})
	assert.ErrorIs(t, err, code.CapacityExceeded)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(100)),
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, code.AdditionNotFound)
}

func TestListAdditionsScopedToOwner(t *testing.T) {
	svc, ctx, w := setupService(t)

	_, err := svc.Create(ctx, &coreAddition.CreateReq{
		WarehouseID: w.ID,
		GrainID:     1,
		Quantity:    ptr(int64(10)),
	})
	require.NoError(t, err)

	foreign := &model.Addition{WarehouseID: w.ID, GrainID: 1, OwnerID: 999, GrossWeight: 5}
	require.NoError(t, db.DB().DBIns().Create(foreign).Error)

	page := &common.PageReq{}
	page.Normalize()
	resp, err := svc.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "milho", resp.Data[0].GrainName)
}
