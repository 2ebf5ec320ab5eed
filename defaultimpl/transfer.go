package impl

import (
	"github.com/oxtoacart/bpool"
	"io"
)

// _Transfer copies bytes from a stream into a destination via an intermediate buffer.
// The buffers come from a small pool with the width of the configured buffering size.
type _Transfer struct {
	pool *bpool.BytePool // intermediate buffers (width = buffering size)
	stat *_ProviderStat  // collects statistical data about internal processes
	id   string          // text for debug logging
}

// newTransfer creates a transfer with intermediate buffers of bufferingSize bytes (must be > 0).
func newTransfer(bufferingSize, buffers int, stat *_ProviderStat, id string) *_Transfer {
	return &_Transfer{
		pool: bpool.NewBytePool(buffers, bufferingSize),
		stat: stat,
		id:   id,
	}
}

// copyFrom copies up to count bytes from the current position of r into dst and returns the number
// of bytes copied. The position of r is advanced by exactly that number.
//
// Each round reads at most one buffer. A round that returns no data or io.EOF ends the transfer,
// so n < count means end-of-data and is not an error (the returned error is nil).
// Any other read error ends the transfer too and is returned together with the bytes copied so far.
// count is limited to len(dst). count <= 0 returns 0 without touching the stream or the pool.
func (t *_Transfer) copyFrom(r io.Reader, dst []byte, count int) (int, error) {
	count = limit(dst, count)
	if count <= 0 {
		return 0, nil // read nothing -> return nothing
	}

	// buffer from pool
	buf := t.pool.Get()
	defer t.pool.Put(buf)

	bytesToRead := count
	bytesRead := 0
	for bytesToRead > 0 {
		req := bytesToRead
		if req > len(buf) {
			req = len(buf)
		}

		n, err := r.Read(buf[:req])
		if n > req {
			n = req // broken reader
		}
		if n > 0 {
			// copy only what was actually read
			copy(dst[bytesRead:bytesRead+n], buf[:n])
			bytesRead += n
			bytesToRead -= n
			t.stat.GetRound(t.id, req, n) // DEBUG
		}

		// exit
		if err == io.EOF {
			return bytesRead, nil // short read
		}
		if err != nil {
			return bytesRead, err
		}
		if n == 0 {
			return bytesRead, nil // no data, no error: end of data
		}
	}
	return bytesRead, nil
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// limit returns count, but not more than len(dst).
func limit(dst []byte, count int) int {
	if count > len(dst) {
		return len(dst)
	}
	return count
}
