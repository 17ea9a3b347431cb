package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generate 生成 UUID
func Generate() string {
	return uuid.New().String()
}

// IdempotencyKey 生成幂等键
//
// Square 要求幂等键不超过 45 个字符，这里使用去掉连字符的 UUID (32 位)。
func IdempotencyKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
