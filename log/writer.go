package log

import (
	"io"
	"os"
	"sync"
)

// MultipleWriter 可动态增减的多端输出，写失败的输出端会被移除
type MultipleWriter struct {
	sync.Mutex
	writers []io.Writer
}

func (m *MultipleWriter) Write(p []byte) (n int, err error) {
	m.Lock()
	defer m.Unlock()
	for i := 0; i < len(m.writers); {
		if _, err = m.writers[i].Write(p); err != nil {
			m.writers = append(m.writers[:i], m.writers[i+1:]...)
			continue
		}
		i++
	}
	return len(p), nil
}

func (m *MultipleWriter) Delete(writer io.Writer) {
	m.Lock()
	defer m.Unlock()
	for i, w := range m.writers {
		if w == writer {
			m.writers = append(m.writers[:i], m.writers[i+1:]...)
			return
		}
	}
}

func (m *MultipleWriter) Add(writer io.Writer) {
	m.Lock()
	m.writers = append(m.writers, writer)
	m.Unlock()
}

var multipleWriter = &MultipleWriter{writers: []io.Writer{os.Stdout}}

func AddWriter(writer io.Writer) {
	multipleWriter.Add(writer)
}

func DeleteWriter(writer io.Writer) {
	multipleWriter.Delete(writer)
}
