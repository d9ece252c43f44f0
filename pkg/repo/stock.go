package repo

import "context"

// StockRepo exposes the aggregate reads the stock engine is built on. All
// sums ignore soft-deleted rows and clamp each movement's net at zero.
type StockRepo interface {
	// SumAdditionNet totals the net quantity of active additions on a
	// warehouse, optionally excluding one addition (the one being edited).
	SumAdditionNet(ctx context.Context, warehouseID int64, excludeID *int64) (int64, error)
	SumWithdrawalNet(ctx context.Context, warehouseID int64, excludeID *int64) (int64, error)
	// DistinctGrainIDs collects the grain ids referenced by the warehouse's
	// active additions and withdrawals.
	DistinctGrainIDs(ctx context.Context, warehouseID int64) ([]int64, error)
	// HasOtherGrain reports whether any active movement on the warehouse
	// references a grain different from grainID, optionally excluding one
	// addition or withdrawal by id.
	HasOtherGrainAddition(ctx context.Context, warehouseID, grainID int64, excludeID *int64) (bool, error)
	HasOtherGrainWithdrawal(ctx context.Context, warehouseID, grainID int64, excludeID *int64) (bool, error)
}
