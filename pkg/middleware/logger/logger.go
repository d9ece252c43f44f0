package logger

import (
	"context"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Path  string
	Level string
	Env   string
}

var global *otelzap.SugaredLogger

// Init builds the process logger: console output in dev, rotated file
// output everywhere, trace-aware via otelzap.
func Init(conf *Config) {
	level := parseLevel(conf.Level)

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encConf), fileWriter, level),
	}
	if conf.Env == "dev" {
		devEnc := zap.NewDevelopmentEncoderConfig()
		devEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(devEnc),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	global = otelzap.New(z, otelzap.WithMinLevel(level)).Sugar()
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func Close(_ context.Context) {
	if global != nil {
		_ = global.Desugar().Sync()
	}
}

func Debugf(ctx context.Context, format string, args ...any) {
	if global != nil {
		global.Ctx(ctx).Debugf(format, args...)
	}
}

func Infof(ctx context.Context, format string, args ...any) {
	if global != nil {
		global.Ctx(ctx).Infof(format, args...)
	}
}

func Warnf(ctx context.Context, format string, args ...any) {
	if global != nil {
		global.Ctx(ctx).Warnf(format, args...)
	}
}

func Errorf(ctx context.Context, format string, args ...any) {
	if global != nil {
		global.Ctx(ctx).Errorf(format, args...)
	}
}

func Fatalf(ctx context.Context, format string, args ...any) {
	if global != nil {
		global.Ctx(ctx).Fatalf(format, args...)
		return
	}
	os.Exit(1)
}
