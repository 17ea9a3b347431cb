package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/square/core/tag"
	"github.com/kochabx/square/log/desensitize"
	"github.com/kochabx/square/log/writer"
)

// FileConfig 文件输出配置
type FileConfig = writer.RotateConfig

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close 关闭日志记录器，释放文件句柄
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// ParseLevel 解析日志级别字符串，空字符串返回 info
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(level)
}

// NewWriter 创建输出到任意 writer 的 Logger
func NewWriter(w io.Writer, opts ...Option) *Logger {
	s := &settings{level: zerolog.TraceLevel}
	for _, opt := range opts {
		opt(s)
	}

	if s.hook != nil {
		w = desensitize.NewWriter(w, s.hook)
	}

	ctx := zerolog.New(w).Level(s.level).With().Timestamp()
	for k, v := range s.fields {
		ctx = ctx.Str(k, v)
	}
	if s.caller {
		if s.callerSkip > 0 {
			ctx = ctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + s.callerSkip)
		} else {
			ctx = ctx.Caller()
		}
	}

	return &Logger{Logger: ctx.Logger()}
}

// New 创建输出到控制台的 Logger
func New(opts ...Option) *Logger {
	return NewWriter(writer.Console(), opts...)
}

// Nop 返回丢弃所有输出的 Logger
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(&c)
	if err != nil {
		return nil, err
	}

	logger := NewWriter(fw, opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

func fileWriter(c *FileConfig) (io.Writer, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(*c)
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return w, nil
}
