package migrate

import (
	"context"

	"github.com/agrosilo/silosys/pkg/common/code"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/repo/model"
)

var defaultGrainTypes = []string{"milho", "soja", "milheto"}

var defaultPlots = []string{"talhão 1", "talhão 2", "talhão 3"}

// Table migrates the schema and seeds reference data. Safe to rerun.
func Table(ctx context.Context) error {
	ds := db.DB()
	if err := ds.DBIns().WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Warehouse{},
		&model.GrainType{},
		&model.Plot{},
		&model.Addition{},
		&model.Withdrawal{},
		&model.Contract{},
	); err != nil {
		return code.CreateDataErr.WithErr(err)
	}

	if err := seedGrainTypes(ctx); err != nil {
		return err
	}
	if err := seedPlots(ctx); err != nil {
		return err
	}
	logger.Infof(ctx, "migration complete")
	return nil
}

func seedGrainTypes(ctx context.Context) error {
	tx := db.DB().DBWithContext(ctx)
	for _, name := range defaultGrainTypes {
		var count int64
		if err := tx.Model(&model.GrainType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return code.QueryRecordErr.WithErr(err)
		}
		if count > 0 {
			continue
		}
		if err := tx.Create(&model.GrainType{Name: name}).Error; err != nil {
			return code.CreateDataErr.WithErr(err)
		}
	}
	return nil
}

func seedPlots(ctx context.Context) error {
	tx := db.DB().DBWithContext(ctx)
	for _, name := range defaultPlots {
		var count int64
		if err := tx.Model(&model.Plot{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return code.QueryRecordErr.WithErr(err)
		}
		if count > 0 {
			continue
		}
		if err := tx.Create(&model.Plot{Name: name}).Error; err != nil {
			return code.CreateDataErr.WithErr(err)
		}
	}
	return nil
}
