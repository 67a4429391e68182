package xzap

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ProjectsTask/EasySwapTrade/base/logger"
)

type ctxKey struct{}

// 全局 logger，SetUp 之前为 Nop，保证任意时刻 WithContext 可用
var globalLogger atomic.Pointer[zap.Logger]

func init() {
	globalLogger.Store(zap.NewNop())
}

// SetUp 初始化全局日志
// mode=console 输出到标准输出，mode=file 通过 lumberjack 滚动写文件
func SetUp(c logger.LogConf) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var sink zapcore.WriteSyncer
	switch c.Mode {
	case "file":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(c.Path, c.ServiceName+".log"),
			MaxSize:  c.MaxSize,
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
	default:
		sink = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
	zlog := zap.New(core, zap.AddCaller()).With(zap.String("service", c.ServiceName))

	globalLogger.Store(zlog)
	zap.ReplaceGlobals(zlog)
	return zlog, nil
}

// WithContext 取出绑定在 ctx 上的 logger，没有则返回全局 logger
func WithContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return globalLogger.Load()
}

// NewContext 将携带额外字段的 logger 绑定到 ctx 上
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, WithContext(ctx).With(fields...))
}
