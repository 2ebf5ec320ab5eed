package impl_test

import (
	"errors"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"testing"
)

var errBoom = errors.New("boom")

//--------  CONSUMER  ------------------------------------------------------------------------------------------------//

// fakeConsumer records the registered callbacks. Tests drive them directly, like the native caller would.
type fakeConsumer struct {
	seq     interf.SequentialCallbacks
	direct  interf.DirectCallbacks
	size    int64
	creates int
	fail    error // returned by Create*
}

func (c *fakeConsumer) CreateSequential(cb interf.SequentialCallbacks) (interf.Provider, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	c.creates++
	c.seq = cb
	c.size = interf.UnknownSize
	return &fakeProvider{c: c}, nil
}

func (c *fakeConsumer) CreateDirect(size int64, cb interf.DirectCallbacks) (interf.Provider, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	c.creates++
	c.direct = cb
	c.size = size
	return &fakeProvider{c: c}, nil
}

// stat returns the statistics of the registered callback set.
func (c *fakeConsumer) stat() interf.Statistics {
	if c.seq != nil {
		return c.seq.(interf.Statistics)
	}
	return c.direct.(interf.Statistics)
}

// err returns the recorded stream fault of the registered callback set.
func (c *fakeConsumer) err() error {
	if c.seq != nil {
		return c.seq.(interf.ErrorReporter).Err()
	}
	return c.direct.(interf.ErrorReporter).Err()
}

type fakeProvider struct {
	c        *fakeConsumer
	released int
}

func (p *fakeProvider) Size() int64 {
	return p.c.size
}

func (p *fakeProvider) Release() {
	p.released++
	if p.released > 1 {
		return
	}
	if p.c.seq != nil {
		p.c.seq.ReleaseInfo()
	} else {
		p.c.direct.ReleaseInfo()
	}
}

//--------  STREAMS  -------------------------------------------------------------------------------------------------//

// countingStream counts calls and injects faults.
type countingStream struct {
	interf.Stream
	reads     int
	closed    int
	failAfter int   // number of good reads before readErr
	readErr   error // nil: no read faults
	seekErr   error // nil: no seek faults
}

func (s *countingStream) Read(p []byte) (int, error) {
	s.reads++
	if s.readErr != nil && s.reads > s.failAfter {
		return 0, s.readErr
	}
	return s.Stream.Read(p)
}

func (s *countingStream) Seek(offset int64, whence int) (int64, error) {
	if s.seekErr != nil {
		return 0, s.seekErr
	}
	return s.Stream.Seek(offset, whence)
}

func (s *countingStream) Close() error {
	s.closed++
	return s.Stream.Close()
}

// pos returns the current position of the stream.
func pos(t *testing.T, s io.Seeker) int64 {
	t.Helper()
	p, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// noSeekStream can read, but not seek.
type noSeekStream struct {
	io.Reader
}

// pipeStream implements io.Seeker, but every seek fails (like a pipe).
type pipeStream struct {
	io.Reader
}

func (s *pipeStream) Seek(_ int64, _ int) (int64, error) {
	return 0, errors.New("illegal seek")
}

//--------  STAT  ----------------------------------------------------------------------------------------------------//

type testStat struct {
	t  *testing.T
	at interf.Statistics

	ProvNew     uint64
	ProvRelease uint64
	StreamClose uint64
	GetReq      uint64
	GetRound    uint64
	GetShort    uint64
	GetErr      uint64
	SkipReq     uint64
	RewindReq   uint64
	SeekErr     uint64
	PosReq      uint64
	PtrReq      uint64
	CacheHit    uint64
	CacheMis    uint64
	CacheSet    uint64
	LateCall    uint64
}

func (ts *testStat) Check() {
	ts.t.Helper()
	m := ts.at.Stat()

	for _, v := range []struct {
		key    string
		should uint64
	}{
		{"ProvNew", ts.ProvNew},
		{"ProvRelease", ts.ProvRelease},
		{"StreamClose", ts.StreamClose},
		{"GetReq", ts.GetReq},
		{"GetRound", ts.GetRound},
		{"GetShort", ts.GetShort},
		{"GetErr", ts.GetErr},
		{"SkipReq", ts.SkipReq},
		{"RewindReq", ts.RewindReq},
		{"SeekErr", ts.SeekErr},
		{"PosReq", ts.PosReq},
		{"PtrReq", ts.PtrReq},
		{"CacheHit", ts.CacheHit},
		{"CacheMis", ts.CacheMis},
		{"CacheSet", ts.CacheSet},
		{"LateCall", ts.LateCall},
	} {
		if m[v.key] != v.should {
			ts.t.Errorf("%s: should=%d, is=%d", v.key, v.should, m[v.key])
		}
	}
}
