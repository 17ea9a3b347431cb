package writer

import (
	"fmt"
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode int

const (
	// RotateModeSize 按大小轮转
	RotateModeSize RotateMode = iota
	// RotateModeTime 按时间轮转
	RotateModeTime
)

// ParseRotateMode 解析 "size" / "time"
func ParseRotateMode(s string) (RotateMode, error) {
	switch s {
	case "", "size":
		return RotateModeSize, nil
	case "time":
		return RotateModeTime, nil
	default:
		return 0, fmt.Errorf("unknown rotate mode %q", s)
	}
}

// String 返回轮转模式的字符串表示
func (m RotateMode) String() string {
	switch m {
	case RotateModeTime:
		return "time"
	case RotateModeSize:
		return "size"
	default:
		return "unknown"
	}
}

// timeRotateWriter 按时间轮转的 writer
func timeRotateWriter(c RotateConfig) (io.Writer, error) {
	w, err := rotatelogs.New(
		c.path("%Y%m%d%H%M"),
		rotatelogs.WithLinkName(c.path("")),
		rotatelogs.WithMaxAge(time.Duration(c.MaxAgeHours)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(c.RotationHours)*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
	}
	return w, nil
}

// sizeRotateWriter 按大小轮转的 writer
func sizeRotateWriter(c RotateConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   c.path(""),
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}
}
