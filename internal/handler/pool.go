package handler

import (
	"bytes"
	"sync"
)

const encodeBufferSize = 1024

// bufferPool reuses encode buffers across responses; snapshots are the
// common payload and run to a few kilobytes
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, encodeBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
