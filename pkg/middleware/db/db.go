package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/agrosilo/silosys/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

// Datastore owns the gorm handle. Repositories embed it and go through
// DBWithContext so statements join an ambient transaction when one exists.
type Datastore struct {
	db *gorm.DB
}

type txKey struct{}

var datastore *Datastore

func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		conf.Host, conf.User, conf.PW, conf.DBName, conf.Port)

	g, err := gorm.Open(postgres.Open(dsn), gormConfig(conf.LogConf.Level))
	if err != nil {
		logger.Fatalf(ctx, "open postgres err: %+v", err)
		return
	}
	if err := g.Use(tracing.NewPlugin()); err != nil {
		logger.Fatalf(ctx, "install gorm tracing err: %+v", err)
		return
	}

	sqlDB, err := g.DB()
	if err != nil {
		logger.Fatalf(ctx, "obtain sql.DB err: %+v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	datastore = &Datastore{db: g}
}

// InitSQLite opens an in-memory datastore, used by tests. The dsn should be
// unique per test to keep tables isolated.
func InitSQLite(ctx context.Context, dsn string) *Datastore {
	g, err := gorm.Open(sqlite.Open(dsn), gormConfig("warn"))
	if err != nil {
		logger.Fatalf(ctx, "open sqlite err: %+v", err)
		return nil
	}
	sqlDB, err := g.DB()
	if err != nil {
		logger.Fatalf(ctx, "obtain sql.DB err: %+v", err)
		return nil
	}
	// a shared-cache memory db must not be reopened per pooled connection
	sqlDB.SetMaxOpenConns(1)

	datastore = &Datastore{db: g}
	return datastore
}

func gormConfig(level string) *gorm.Config {
	logLevel := gormlogger.Warn
	if level == "debug" {
		logLevel = gormlogger.Info
	}
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}
}

func ClosePostgres(_ context.Context) {
	if datastore == nil {
		return
	}
	if sqlDB, err := datastore.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func DB() *Datastore {
	return datastore
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext returns the ambient transaction when ctx carries one.
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// ExecTx runs fn inside a single database transaction. Every repository call
// made with the derived context shares that transaction; any error rolls the
// whole unit back.
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.DBWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// SupportsRowLock reports whether the dialect honors SELECT ... FOR UPDATE.
// SQLite serializes writers on its own.
func (d *Datastore) SupportsRowLock() bool {
	return d.db.Dialector.Name() == "postgres"
}
