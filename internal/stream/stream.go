// Package stream holds the buffer plumbing shared by the compression codecs.
package stream

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/zoobzio/transcode"
)

var buffers = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// WriterFunc opens a compressing writer over w.
type WriterFunc func(w io.Writer) (io.WriteCloser, error)

// Compress runs data through the writer open returns and gives back a copy
// of everything written, including the trailer flushed by Close.
func Compress(data []byte, open WriterFunc) ([]byte, error) {
	buf, _ := buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer buffers.Put(buf)

	w, err := open(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// ReadAll reads r to the end. When limit is positive, output longer than
// limit bytes fails with transcode.ErrLengthExceeded.
func ReadAll(r io.Reader, limit int) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", transcode.ErrLengthExceeded, limit)
	}
	return out, nil
}
