package internal

import (
	"bytes"
	"sync"
)

// maxPooledSize 超过该容量的 buffer 不放回池中
const maxPooledSize = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// GetBuffer 从池中获取一个空 Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer 将 Buffer 归还到池中
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	bufferPool.Put(buf)
}
