package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/square/log/desensitize"
)

type settings struct {
	level      zerolog.Level
	caller     bool
	callerSkip int
	hook       *desensitize.Hook
	fields     map[string]string
}

// Option Logger 选项函数
type Option func(*settings)

// WithLevel 设置日志级别
func WithLevel(level zerolog.Level) Option {
	return func(s *settings) {
		s.level = level
	}
}

// WithCaller 记录调用位置
func WithCaller() Option {
	return func(s *settings) {
		s.caller = true
	}
}

// WithCallerSkip 设置调用栈跳过的帧数
func WithCallerSkip(skip int) Option {
	return func(s *settings) {
		s.caller = true
		s.callerSkip = skip
	}
}

// WithDesensitize 设置脱敏钩子
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(s *settings) {
		s.hook = hook
	}
}

// WithField 为每条日志附加固定字段
func WithField(key, value string) Option {
	return func(s *settings) {
		if s.fields == nil {
			s.fields = make(map[string]string)
		}
		s.fields[key] = value
	}
}
