package grain

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

type grainImpl struct {
	*db.Datastore
}

func New() repo.GrainRepo {
	return &grainImpl{Datastore: db.DB()}
}

func (g *grainImpl) ListGrainTypes(ctx context.Context) ([]*model.GrainType, error) {
	var list []*model.GrainType
	if err := g.DBWithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (g *grainImpl) GrainNamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	return namesByID[model.GrainType](ctx, g.Datastore, ids)
}

type plotImpl struct {
	*db.Datastore
}

func NewPlotRepo() repo.PlotRepo {
	return &plotImpl{Datastore: db.DB()}
}

func (p *plotImpl) ListPlots(ctx context.Context) ([]*model.Plot, error) {
	var list []*model.Plot
	if err := p.DBWithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (p *plotImpl) PlotExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := p.DBWithContext(ctx).Model(&model.Plot{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, code.QueryRecordErr.WithErr(err)
	}
	return count > 0, nil
}

func (p *plotImpl) PlotNamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	return namesByID[model.Plot](ctx, p.Datastore, ids)
}

type namedRow struct {
	ID   int64
	Name string
}

func namesByID[T any](ctx context.Context, ds *db.Datastore, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []*namedRow
	var mdl T
	err := ds.DBWithContext(ctx).Model(&mdl).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}
