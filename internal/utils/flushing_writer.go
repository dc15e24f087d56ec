package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// FlushingWriter serializes report writes, pushes buffered destinations after each write,
// and counts the bytes accepted by the destination.
type FlushingWriter struct {
	writer       io.Writer
	mutex        sync.Mutex
	bytesWritten int64
}

// NewFlushingWriter wraps the provided writer. A nil writer yields nil.
func NewFlushingWriter(writer io.Writer) *FlushingWriter {
	if writer == nil {
		return nil
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the destination, then calls its Flush method when present.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	flushingWriter.bytesWritten += int64(bytesWritten)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushableWriter, implementsFlush := flushingWriter.writer.(flusher); implementsFlush {
		if flushError := flushableWriter.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}

// BytesWritten reports the total accepted by the destination so far.
func (flushingWriter *FlushingWriter) BytesWritten() int64 {
	if flushingWriter == nil {
		return 0
	}
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()
	return flushingWriter.bytesWritten
}

// Sync forwards to destinations that persist with Sync, such as files. Others are a no-op.
func (flushingWriter *FlushingWriter) Sync() error {
	if flushingWriter == nil {
		return nil
	}
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()
	if syncableWriter, implementsSync := flushingWriter.writer.(syncer); implementsSync {
		return syncableWriter.Sync()
	}
	return nil
}
