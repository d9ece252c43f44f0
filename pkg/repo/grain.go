package repo

import (
	"context"

	"github.com/agrosilo/silosys/pkg/repo/model"
)

type GrainRepo interface {
	ListGrainTypes(ctx context.Context) ([]*model.GrainType, error)
	// GrainNamesByID resolves display names for response assembly in one
	// query; unknown ids are absent from the map.
	GrainNamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}

type PlotRepo interface {
	ListPlots(ctx context.Context) ([]*model.Plot, error)
	PlotExists(ctx context.Context, id int64) (bool, error)
	PlotNamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}
