package grain

import (
	"context"

	core "github.com/agrosilo/silosys/pkg/core/grain"
	"github.com/agrosilo/silosys/pkg/repo"
	grainRepo "github.com/agrosilo/silosys/pkg/repo/grain"
)

type grainImpl struct {
	grains repo.GrainRepo
	plots  repo.PlotRepo
}

func New() core.Service {
	return &grainImpl{
		grains: grainRepo.New(),
		plots:  grainRepo.NewPlotRepo(),
	}
}

func (g *grainImpl) ListGrains(ctx context.Context) ([]*core.GrainResp, error) {
	list, err := g.grains.ListGrainTypes(ctx)
	if err != nil {
		return nil, err
	}
	respList := make([]*core.GrainResp, 0, len(list))
	for _, data := range list {
		respList = append(respList, &core.GrainResp{ID: data.ID, Name: data.Name})
	}
	return respList, nil
}

func (g *grainImpl) ListPlots(ctx context.Context) ([]*core.PlotResp, error) {
	list, err := g.plots.ListPlots(ctx)
	if err != nil {
		return nil, err
	}
	respList := make([]*core.PlotResp, 0, len(list))
	for _, data := range list {
		respList = append(respList, &core.PlotResp{ID: data.ID, Name: data.Name})
	}
	return respList, nil
}
