package impl

import (
	"fmt"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"sync"
)

// interface check: interf.DirectCallbacks
var _ interf.DirectCallbacks = (*_DirectAdapter)(nil)
var _ interf.ErrorReporter = (*_DirectAdapter)(nil)
var _ interf.Statistics = (*_DirectAdapter)(nil)

// @see interf.DirectCallbacks
//
// DirectAdapter serves a consumer that requests bytes at arbitrary absolute positions of a stream
// with a known total size. Every request repositions the stream first.
// The byte pointer fast path is never offered: a stream has no stable memory to point at.
type _DirectAdapter struct {
	mux      *sync.Mutex    // protect the stream position
	stream   interf.Stream  // source of all bytes
	size     int64          // declared total size
	transfer *_Transfer     // buffered copy into the consumer's destination
	sectors  *_SectorReader // cached sector access, nil without cache
	life     *_Lifetime     // release and ownership
	stat     *_ProviderStat // collects statistical data about internal processes
	id       string         // cache key and log id
	err      error          // first stream fault (see Err)
}

// NewDirectProvider validates stream and conf and registers a random access callback set with the consumer.
// size is the total length of the stream. With size = interf.UnknownSize the stream is measured once
// (Seek to the end and back). Other negative sizes are invalid.
// If conf.Cache is set, requests are served sector by sector from the cache.
// On error nothing is registered and the stream is not closed, even if conf.Ownership is interf.Owned.
func NewDirectProvider(consumer interf.Consumer, stream io.Reader, size int64, conf interf.Config) (interf.Provider, error) {
	s, err := validate(consumer, stream, conf)
	if err != nil {
		return nil, fmt.Errorf("impl/NewDirectProvider: %w", err)
	}

	// check size
	if size == interf.UnknownSize {
		size, err = measure(s)
		if err != nil {
			return nil, fmt.Errorf("impl/NewDirectProvider: %w: can't measure stream: %v", ErrInvalidSize, err)
		}
	}
	if size < 0 {
		return nil, fmt.Errorf("impl/NewDirectProvider: %w: %d", ErrInvalidSize, size)
	}

	a := newDirectAdapter(s, size, conf)
	p, err := consumer.CreateDirect(size, a)
	if err != nil {
		return nil, fmt.Errorf("impl/NewDirectProvider: consumer refused callbacks: %w", err)
	}
	return p, nil
}

// newDirectAdapter builds the callback set of a valid stream, size and config.
func newDirectAdapter(s interf.Stream, size int64, conf interf.Config) *_DirectAdapter {
	id := conf.CacheId
	if id == "" {
		id = genId()
	}

	stat := newProviderStat(conf.DebugLvl, "impl/direct")
	stat.ProvNew(id, "direct", size, conf.Ownership, conf.BufferingSize) // DEBUG

	transfer := newTransfer(conf.BufferingSize, interf.PoolBuffers, stat, id)

	// the cache can be nil!
	var sectors *_SectorReader
	if conf.Cache != nil {
		sectors = newSectorReader(s, transfer, conf.Cache, stat, id)
	}

	return &_DirectAdapter{
		mux:      new(sync.Mutex),
		stream:   s,
		size:     size,
		transfer: transfer,
		sectors:  sectors,
		life:     newLifetime(s, conf.Ownership, stat, id),
		stat:     stat,
		id:       id,
	}
}

// @see interf.DirectCallbacks
//
// GetBytePointer always reports the fast path as unsupported (nil).
func (a *_DirectAdapter) GetBytePointer() []byte {
	a.stat.PtrReq(a.id) // DEBUG
	return nil
}

// @see interf.DirectCallbacks
//
// ReleaseBytePointer has nothing to release (see GetBytePointer).
func (a *_DirectAdapter) ReleaseBytePointer(_ []byte) {
	// nope
}

// @see interf.DirectCallbacks
func (a *_DirectAdapter) GetBytesAtPosition(dst []byte, position int64, count int) int {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	if a.life.isReleased() {
		a.stat.LateCall(a.id, "GetBytesAtPosition") // WARNING
		return 0
	}
	count = limit(dst, count)
	if count <= 0 {
		return 0 // read nothing -> return nothing
	}

	a.stat.PosReq(a.id, position, count) // DEBUG
	if position < 0 {
		err := fmt.Errorf("impl/direct.GetBytesAtPosition: negative position %d", position)
		a.stat.GetRet(a.id, count, 0, err) // ERROR
		a.fault(err)
		return 0
	}

	var n int
	var err error
	if a.sectors != nil {
		// cached sectors
		n, err = a.sectors.readAt(dst[:count], position)
	} else {
		// reposition and copy
		if _, err := a.stream.Seek(position, io.SeekStart); err != nil {
			a.stat.SeekErr(a.id, position, io.SeekStart, err) // ERROR
			a.fault(err)
			return 0
		}
		n, err = a.transfer.copyFrom(a.stream, dst, count)
	}

	a.fault(err)
	a.stat.GetRet(a.id, count, n, err) // DEBUG
	return n
}

// @see interf.DirectCallbacks
func (a *_DirectAdapter) ReleaseInfo() {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	first, err := a.life.release()
	a.fault(err)
	if first {
		a.stat.PrintStatAfterRelease(a.id) // DEBUG
	}
}

// Size returns the declared total size.
func (a *_DirectAdapter) Size() int64 {
	return a.size
}

// @see interf.ErrorReporter
func (a *_DirectAdapter) Err() error {
	a.mux.Lock() // LOCK
	defer a.mux.Unlock()

	return a.err
}

// @see interf.Statistics
func (a *_DirectAdapter) Stat() map[string]uint64 {
	return a.stat.Stat()
}

// fault keeps the first stream error. Caller must hold the lock.
func (a *_DirectAdapter) fault(err error) {
	if err != nil && err != io.EOF && a.err == nil {
		a.err = err
	}
}
