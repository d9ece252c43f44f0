package contract_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/common"
	"github.com/agrosilo/silosys/pkg/common/code"
	coreContract "github.com/agrosilo/silosys/pkg/core/contract"
	contractImpl "github.com/agrosilo/silosys/pkg/core/contract/contract"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

func ptr[T any](v T) *T { return &v }

func setupService(t *testing.T) (coreContract.Service, context.Context) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))

	user := &model.User{Name: "joao", Email: "joao@fazenda.br", PasswordHash: "x"}
	require.NoError(t, db.DB().DBIns().Create(user).Error)

	return contractImpl.New(), auth.WithUser(ctx, user)
}

func TestCreateContract(t *testing.T) {
	svc, ctx := setupService(t)

	resp, err := svc.Create(ctx, &coreContract.CreateReq{
		Company:  "coop agro",
		GrainID:  2,
		DueDate:  "2026-12-01",
		Value:    150000,
		Quantity: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, "coop agro", resp.Company)
	assert.Equal(t, "2026-12-01", resp.DueDate)
	assert.Equal(t, "soja", resp.GrainName)
	assert.Nil(t, resp.PaymentDate)
	assert.Equal(t, int64(0), resp.QuantityWithdrawn)
}

func TestCreateContractBadDate(t *testing.T) {
	svc, ctx := setupService(t)

	_, err := svc.Create(ctx, &coreContract.CreateReq{
		Company:  "coop agro",
		GrainID:  1,
		DueDate:  "01/12/2026",
		Value:    150000,
		Quantity: 60000,
	})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestContractQuantityWithdrawn(t *testing.T) {
	svc, ctx := setupService(t)

	created, err := svc.Create(ctx, &coreContract.CreateReq{
		Company:  "coop agro",
		GrainID:  1,
		DueDate:  "2026-12-01",
		Value:    150000,
		Quantity: 60000,
	})
	require.NoError(t, err)

	gross := int64(25)
	wd := &model.Withdrawal{
		WarehouseID: 1,
		GrainID:     1,
		ContractID:  &created.ID,
		OwnerID:     1,
		GrossWeight: &gross,
	}
	require.NoError(t, db.DB().DBIns().Create(wd).Error)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), got.QuantityWithdrawn)
}

func TestUpdateContractPaymentDate(t *testing.T) {
	svc, ctx := setupService(t)

	created, err := svc.Create(ctx, &coreContract.CreateReq{
		Company:  "coop agro",
		GrainID:  1,
		DueDate:  "2026-12-01",
		Value:    150000,
		Quantity: 60000,
	})
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, &coreContract.UpdateReq{
		PaymentDate: ptr("2026-11-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, "2026-11-15", *resp.PaymentDate)
}

func TestContractListAndDelete(t *testing.T) {
	svc, ctx := setupService(t)

	created, err := svc.Create(ctx, &coreContract.CreateReq{
		Company:  "coop agro",
		GrainID:  1,
		DueDate:  "2026-12-01",
		Value:    150000,
		Quantity: 60000,
	})
	require.NoError(t, err)

	page := &common.PageReq{}
	page.Normalize()
	list, err := svc.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, code.ContractNotFound)
}
