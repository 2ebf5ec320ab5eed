package impl

import (
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"sync/atomic"
)

// _Lifetime is the ownership policy of a provider.
// It is consulted once, at release, and disposes the stream only if the stream is owned.
type _Lifetime struct {
	stream   io.Closer
	own      interf.Ownership
	released uint32 // 0: active, 1: released

	stat *_ProviderStat
	id   string
}

func newLifetime(stream io.Closer, own interf.Ownership, stat *_ProviderStat, id string) *_Lifetime {
	return &_Lifetime{
		stream: stream,
		own:    own,
		stat:   stat,
		id:     id,
	}
}

// release moves the provider into the terminal state and closes an owned stream.
// Only the first call has an effect (first=true). err is the error of Close.
func (l *_Lifetime) release() (first bool, err error) {
	if !atomic.CompareAndSwapUint32(&l.released, 0, 1) {
		l.stat.ProvRelease(l.id, false) // WARNING
		return false, nil
	}
	l.stat.ProvRelease(l.id, true) // DEBUG

	if l.own == interf.Owned {
		err = l.stream.Close()
		l.stat.StreamClose(l.id, err) // DEBUG
	}
	return true, err
}

// isReleased reports whether release was called.
func (l *_Lifetime) isReleased() bool {
	return atomic.LoadUint32(&l.released) == 1
}
