// Package stock implements the accounting engine behind every movement
// write: stock derivation from the movement history and the invariant
// checks (capacity, single grain per warehouse, withdrawal ceiling).
package stock

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/repo"
	grainRepo "github.com/agrosilo/silosys/pkg/repo/grain"
	stockRepo "github.com/agrosilo/silosys/pkg/repo/stock"
	warehouseRepo "github.com/agrosilo/silosys/pkg/repo/warehouse"
)

type MovementKind int

const (
	KindAddition MovementKind = iota + 1
	KindWithdrawal
)

// MovementRef identifies the movement being edited so its stored value is
// excluded before an invariant is re-checked against the new value.
type MovementRef struct {
	Kind MovementKind
	ID   int64
}

type Engine struct {
	warehouses repo.WarehouseRepo
	stock      repo.StockRepo
	plots      repo.PlotRepo
}

func New() *Engine {
	return &Engine{
		warehouses: warehouseRepo.New(),
		stock:      stockRepo.New(),
		plots:      grainRepo.NewPlotRepo(),
	}
}

func (e *Engine) split(exclude *MovementRef) (excludeAddition, excludeWithdrawal *int64) {
	if exclude == nil {
		return nil, nil
	}
	switch exclude.Kind {
	case KindAddition:
		return &exclude.ID, nil
	case KindWithdrawal:
		return nil, &exclude.ID
	}
	return nil, nil
}

// ComputeStock derives the warehouse's live stock from its active
// movements: inbound net minus outbound net, floored at zero.
func (e *Engine) ComputeStock(ctx context.Context, warehouseID int64, exclude *MovementRef) (int64, error) {
	excludeAddition, excludeWithdrawal := e.split(exclude)
	inbound, err := e.stock.SumAdditionNet(ctx, warehouseID, excludeAddition)
	if err != nil {
		return 0, err
	}
	outbound, err := e.stock.SumWithdrawalNet(ctx, warehouseID, excludeWithdrawal)
	if err != nil {
		return 0, err
	}
	if stock := inbound - outbound; stock > 0 {
		return stock, nil
	}
	return 0, nil
}

// InferGrainType returns the grain held by the warehouse: the single
// distinct grain id across its active movements, or nil when the warehouse
// has no movements. The single-grain invariant keeps a multi-grain state
// from ever arising through the guarded write paths.
func (e *Engine) InferGrainType(ctx context.Context, warehouseID int64) (*int64, error) {
	grains, err := e.stock.DistinctGrainIDs(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if len(grains) == 1 {
		return &grains[0], nil
	}
	return nil, nil
}

// ValidateCapacity rejects an addition that would push the warehouse past
// its capacity. The warehouse must exist, be active and belong to ownerID.
func (e *Engine) ValidateCapacity(ctx context.Context, ownerID, warehouseID, incomingNet int64, exclude *MovementRef) error {
	warehouse, err := e.warehouses.GetOwnedWarehouse(ctx, ownerID, warehouseID)
	if err != nil {
		return err
	}
	current, err := e.ComputeStock(ctx, warehouseID, exclude)
	if err != nil {
		return err
	}
	if current+incomingNet > warehouse.Capacity {
		return code.CapacityExceeded.WithMsgf(
			"warehouse capacity exceeded: current stock %d, capacity %d, max addable %d",
			current, warehouse.Capacity, warehouse.Capacity-current)
	}
	return nil
}

// ValidateSingleGrain rejects a movement whose grain differs from any other
// active movement on the warehouse, addition or withdrawal alike.
func (e *Engine) ValidateSingleGrain(ctx context.Context, warehouseID, grainID int64, exclude *MovementRef) error {
	excludeAddition, excludeWithdrawal := e.split(exclude)
	conflict, err := e.stock.HasOtherGrainAddition(ctx, warehouseID, grainID, excludeAddition)
	if err != nil {
		return err
	}
	if conflict {
		return code.GrainConflict
	}
	conflict, err = e.stock.HasOtherGrainWithdrawal(ctx, warehouseID, grainID, excludeWithdrawal)
	if err != nil {
		return err
	}
	if conflict {
		return code.GrainConflict
	}
	return nil
}

// ValidateWithdrawalCeiling rejects a withdrawal whose net exceeds the
// available stock. A withdrawal that is not yet weighed (net <= 0) passes.
func (e *Engine) ValidateWithdrawalCeiling(ctx context.Context, warehouseID int64, gross, tare *int64, excludeID *int64) error {
	var net int64
	if gross != nil {
		net = *gross
	}
	if tare != nil {
		net -= *tare
	}
	if net <= 0 {
		return nil
	}

	var exclude *MovementRef
	if excludeID != nil {
		exclude = &MovementRef{Kind: KindWithdrawal, ID: *excludeID}
	}
	available, err := e.ComputeStock(ctx, warehouseID, exclude)
	if err != nil {
		return err
	}
	if net > available {
		return code.InsufficientStock.WithMsgf(
			"withdrawal exceeds available stock: available %d kg", available)
	}
	return nil
}

// ValidatePlot checks that a supplied plot reference exists.
func (e *Engine) ValidatePlot(ctx context.Context, plotID *int64) error {
	if plotID == nil {
		return nil
	}
	exists, err := e.plots.PlotExists(ctx, *plotID)
	if err != nil {
		return err
	}
	if !exists {
		return code.PlotNotFound
	}
	return nil
}
