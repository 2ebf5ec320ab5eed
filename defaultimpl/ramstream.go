package impl

import (
	"errors"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"os"
	"sync"
)

var _ interf.Stream = (*_RamStream)(nil)
var _ interf.Capabilities = (*_RamStream)(nil)

type _RamStream struct {
	mux    *sync.Mutex
	data   []byte
	pos    int64
	closed bool
}

// NewRamStream return a Stream implementation that provides data from the ram ([]byte).
// The data is not copied. After Close the stream is neither readable nor seekable.
func NewRamStream(data []byte) interf.Stream {
	// check nil
	if data == nil {
		data = make([]byte, 0)
	}
	// return
	return &_RamStream{
		mux:  new(sync.Mutex),
		data: data,
	}
}

//--------------------------------------------------------------------------------------------------------------------//

func (r *_RamStream) Read(b []byte) (n int, err error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if r.closed {
		return 0, os.ErrClosed
	}
	if len(b) == 0 {
		return 0, nil
	}
	// no data
	if r.pos >= int64(len(r.data)) {
		return 0, io.EOF
	}
	// copy & return
	n = copy(b, r.data[r.pos:])
	r.pos += int64(n)
	return
}

func (r *_RamStream) Seek(offset int64, whence int) (int64, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if r.closed {
		return 0, os.ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.pos + offset
	case io.SeekEnd:
		abs = int64(len(r.data)) + offset
	default:
		return 0, errors.New("impl/RamStream.Seek: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("impl/RamStream.Seek: negative position")
	}
	r.pos = abs // a position beyond the end is valid, Read returns io.EOF
	return abs, nil
}

func (r *_RamStream) Close() error {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.closed = true
	return nil
}

func (r *_RamStream) CanRead() bool {
	r.mux.Lock()
	defer r.mux.Unlock()

	return !r.closed
}

func (r *_RamStream) CanSeek() bool {
	return r.CanRead()
}
