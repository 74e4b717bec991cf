package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L     *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	var err error
	L, err = build(nil)
	if err != nil {
		panic(err)
	}
}

func build(outputPaths []string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = level
	if len(outputPaths) > 0 {
		config.OutputPaths = outputPaths
		config.ErrorOutputPaths = outputPaths
	}
	return config.Build(zap.AddCallerSkip(1))
}

// SetLevel 調整全域 log level，無法解析時維持原設定
func SetLevel(text string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(text)); err != nil {
		L.Warn("invalid log level, keeping current", zap.String("level", text))
		return
	}
	level.SetLevel(l)
}

// RedirectTo 將輸出改寫到指定路徑（TUI 佔用 stdout 時使用）
func RedirectTo(paths ...string) error {
	next, err := build(paths)
	if err != nil {
		return err
	}
	_ = L.Sync()
	L = next
	return nil
}

// WithComponent 回傳帶有 component 欄位的 logger，供 handler、service、storage 等使用
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}
