package util

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
)

var (
	sseBegin = []byte("data: ")
	sseEnd   = []byte("\n\n")
)

type SSE struct {
	http.ResponseWriter
	context.Context
}

func NewSSE(w http.ResponseWriter, ctx context.Context) *SSE {
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	return &SSE{
		ResponseWriter: w,
		Context:        ctx,
	}
}

func (sse *SSE) Write(data []byte) (n int, err error) {
	if err = sse.Err(); err != nil {
		return
	}
	buffers := net.Buffers{sseBegin, data, sseEnd}
	var nn int64
	if nn, err = buffers.WriteTo(sse.ResponseWriter); err == nil {
		if flusher, ok := sse.ResponseWriter.(http.Flusher); ok {
			flusher.Flush()
		}
	}
	return int(nn), err
}

func (sse *SSE) WriteJSON(data any) (err error) {
	var b []byte
	if b, err = json.Marshal(data); err == nil {
		_, err = sse.Write(b)
	}
	return
}
