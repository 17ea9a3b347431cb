package writer

import (
	"fmt"
	"io"
	"path/filepath"
)

// RotateConfig 日志文件配置，零值字段由 default 标签补齐
type RotateConfig struct {
	Dir  string     `json:"dir" default:"log"`
	Name string     `json:"name" default:"square"`
	Ext  string     `json:"ext" default:"log"`
	Mode RotateMode `json:"mode"`

	// 按时间轮转
	MaxAgeHours   int `json:"max_age_hours" default:"168"`
	RotationHours int `json:"rotation_hours" default:"24"`

	// 按大小轮转
	MaxSizeMB  int  `json:"max_size_mb" default:"100"`
	MaxBackups int  `json:"max_backups" default:"5"`
	MaxAgeDays int  `json:"max_age_days" default:"30"`
	Compress   bool `json:"compress"`
}

// File 按轮转模式创建文件 writer
func File(c RotateConfig) (io.Writer, error) {
	switch c.Mode {
	case RotateModeTime:
		return timeRotateWriter(c)
	case RotateModeSize:
		return sizeRotateWriter(c), nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", c.Mode)
	}
}

// path 返回 dir/name[.suffix].ext
func (c RotateConfig) path(suffix string) string {
	name := c.Name
	if suffix != "" {
		name += "." + suffix
	}
	return filepath.Join(c.Dir, name+"."+c.Ext)
}
