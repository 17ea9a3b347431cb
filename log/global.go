package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/square/log/desensitize"
)

var (
	// G 全局日志实例，默认启用内置脱敏规则
	G = New(WithDesensitize(desensitize.Builtin()), WithLevel(zerolog.InfoLevel))
)

// SetGlobalLogger 设置全局日志记录器
func SetGlobalLogger(logger *Logger) {
	if logger != nil {
		G = logger
	}
}

// SetGlobalLevel 设置全局日志级别
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

// Debug 返回 debug 级别的日志事件
func Debug() *zerolog.Event {
	return G.Debug()
}

// Info 返回 info 级别的日志事件
func Info() *zerolog.Event {
	return G.Info()
}

// Warn 返回 warn 级别的日志事件
func Warn() *zerolog.Event {
	return G.Warn()
}

// Error 返回 error 级别的日志事件
func Error() *zerolog.Event {
	return G.Error()
}
