package impl

import (
	"fmt"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"sync"
)

// interface check: interf.SequentialCallbacks
var _ interf.SequentialCallbacks = (*_SequentialAdapter)(nil)
var _ interf.ErrorReporter = (*_SequentialAdapter)(nil)
var _ interf.Statistics = (*_SequentialAdapter)(nil)

// @see interf.SequentialCallbacks
//
// SequentialAdapter serves a consumer that reads a stream forward, with explicit skips and rewinds.
// The position of the stream is the only mutable state.
type _SequentialAdapter struct {
	mux      *sync.Mutex    // protect the stream position
	stream   interf.Stream  // source of all bytes
	transfer *_Transfer     // buffered copy into the consumer's destination
	life     *_Lifetime     // release and ownership
	stat     *_ProviderStat // collects statistical data about internal processes
	id       string         // cache key and log id
	err      error          // first stream fault (see Err)
}

// NewSequentialProvider validates stream and conf and registers a sequential callback set with the consumer.
// The returned provider is the consumer's handle. On error nothing is registered and the stream is not closed,
// even if conf.Ownership is interf.Owned.
func NewSequentialProvider(consumer interf.Consumer, stream io.Reader, conf interf.Config) (interf.Provider, error) {
	s, err := validate(consumer, stream, conf)
	if err != nil {
		return nil, fmt.Errorf("impl/NewSequentialProvider: %w", err)
	}

	a := newSequentialAdapter(s, conf)
	p, err := consumer.CreateSequential(a)
	if err != nil {
		return nil, fmt.Errorf("impl/NewSequentialProvider: consumer refused callbacks: %w", err)
	}
	return p, nil
}

// newSequentialAdapter builds the callback set of a valid stream and config.
func newSequentialAdapter(s interf.Stream, conf interf.Config) *_SequentialAdapter {
	id := conf.CacheId
	if id == "" {
		id = genId()
	}

	stat := newProviderStat(conf.DebugLvl, "impl/seq")
	stat.ProvNew(id, "sequential", interf.UnknownSize, conf.Ownership, conf.BufferingSize) // DEBUG

	return &_SequentialAdapter{
		mux:      new(sync.Mutex),
		stream:   s,
		transfer: newTransfer(conf.BufferingSize, interf.PoolBuffers, stat, id),
		life:     newLifetime(s, conf.Ownership, stat, id),
		stat:     stat,
		id:       id,
	}
}

// @see interf.SequentialCallbacks
func (a *_SequentialAdapter) GetBytes(dst []byte, count int) int {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	if a.life.isReleased() {
		a.stat.LateCall(a.id, "GetBytes") // WARNING
		return 0
	}
	count = limit(dst, count)
	if count <= 0 {
		return 0 // read nothing -> return nothing
	}

	a.stat.GetReq(a.id, interf.UnknownSize, count) // DEBUG
	n, err := a.transfer.copyFrom(a.stream, dst, count)
	a.fault(err)
	a.stat.GetRet(a.id, count, n, err) // DEBUG
	return n
}

// @see interf.SequentialCallbacks
//
// SkipBytes is a pure seek. count <= 0 does nothing, a sequential stream never moves backwards.
func (a *_SequentialAdapter) SkipBytes(count int64) {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	if a.life.isReleased() {
		a.stat.LateCall(a.id, "SkipBytes") // WARNING
		return
	}
	if count <= 0 {
		return
	}

	a.stat.SkipReq(a.id, count) // DEBUG
	if _, err := a.stream.Seek(count, io.SeekCurrent); err != nil {
		a.stat.SeekErr(a.id, count, io.SeekCurrent, err) // ERROR
		a.fault(err)
	}
}

// @see interf.SequentialCallbacks
func (a *_SequentialAdapter) Rewind() {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	if a.life.isReleased() {
		a.stat.LateCall(a.id, "Rewind") // WARNING
		return
	}

	a.stat.RewindReq(a.id) // DEBUG
	if _, err := a.stream.Seek(0, io.SeekStart); err != nil {
		a.stat.SeekErr(a.id, 0, io.SeekStart, err) // ERROR
		a.fault(err)
	}
}

// @see interf.SequentialCallbacks
func (a *_SequentialAdapter) ReleaseInfo() {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	first, err := a.life.release()
	a.fault(err)
	if first {
		a.stat.PrintStatAfterRelease(a.id) // DEBUG
	}
}

// @see interf.ErrorReporter
func (a *_SequentialAdapter) Err() error {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	return a.err
}

// @see interf.Statistics
func (a *_SequentialAdapter) Stat() map[string]uint64 {
	return a.stat.Stat()
}

// fault keeps the first stream error. Caller must hold the lock.
func (a *_SequentialAdapter) fault(err error) {
	if err != nil && err != io.EOF && a.err == nil {
		a.err = err
	}
}
