package grain

import "context"

type GrainResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PlotResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Service interface {
	ListGrains(ctx context.Context) ([]*GrainResp, error)
	ListPlots(ctx context.Context) ([]*PlotResp, error)
}
