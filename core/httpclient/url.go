package httpclient

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// URLBuilder 提供链式调用API用于构建URL
//
// 路径段按已转义的形式保存，调用方需自行对动态段执行 url.PathEscape。
type URLBuilder struct {
	scheme string
	host   string
	path   strings.Builder
	query  url.Values
}

// AppendPath 追加路径段，自动处理斜杠并忽略空段
func (b *URLBuilder) AppendPath(segments ...string) *URLBuilder {
	current := b.path.String()

	parts := make([]string, 0, len(segments)+1)
	if current != "" {
		parts = append(parts, current)
	}
	for _, segment := range segments {
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	if len(parts) > 0 {
		joined := path.Join(parts...)
		if !strings.HasPrefix(joined, "/") {
			joined = "/" + joined
		}
		b.path.Reset()
		b.path.WriteString(joined)
	}

	return b
}

// SetQueryMap 批量设置查询参数，会覆盖同名参数
func (b *URLBuilder) SetQueryMap(params map[string]string) *URLBuilder {
	for k, v := range params {
		b.query.Set(k, v)
	}
	return b
}

// Build 构建最终的URL字符串
func (b *URLBuilder) Build() (string, error) {
	escaped := b.path.String()
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", escaped, err)
	}

	u := &url.URL{
		Scheme:  b.scheme,
		Host:    b.host,
		Path:    unescaped,
		RawPath: escaped,
	}
	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}

	return u.String(), nil
}

// String 实现fmt.Stringer接口
func (b *URLBuilder) String() string {
	result, _ := b.Build()
	return result
}

// FromURL 从现有URL字符串创建构建器
func FromURL(rawURL string) (*URLBuilder, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	builder := &URLBuilder{
		scheme: u.Scheme,
		host:   u.Host,
		query:  u.Query(),
	}
	if p := u.EscapedPath(); p != "" {
		builder.path.WriteString(p)
	}

	return builder, nil
}

// Join 简单的路径拼接函数，忽略空段
func Join(base string, segments ...string) string {
	all := make([]string, 0, len(segments)+1)
	if base != "" {
		all = append(all, base)
	}
	for _, segment := range segments {
		if segment != "" {
			all = append(all, segment)
		}
	}
	return path.Join(all...)
}
