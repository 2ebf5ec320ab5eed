package impl_test

import (
	"bytes"
	"errors"
	impl "github.com/SchnorcherSepp/dataprovider/defaultimpl"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"sync"
	"testing"
)

func TestNewSequentialProvider(t *testing.T) {
	data := impl.CountData(1000)
	conf := interf.DefaultConfig()
	conf.Ownership = interf.Owned // a failed construction never closes the stream

	closedRam := impl.NewRamStream(data)
	_ = closedRam.Close()

	// invalid input
	tests := []struct {
		name     string
		consumer interf.Consumer
		stream   interface{ Read([]byte) (int, error) }
		bufSize  int
		own      interf.Ownership
		err      error
	}{
		{"no consumer", nil, impl.NewRamStream(data), 256, interf.Owned, impl.ErrNoConsumer},
		{"nil stream", &fakeConsumer{}, nil, 256, interf.Owned, impl.ErrInvalidStream},
		{"not seekable", &fakeConsumer{}, &noSeekStream{bytes.NewReader(data)}, 256, interf.Owned, impl.ErrInvalidStream},
		{"pipe", &fakeConsumer{}, &pipeStream{bytes.NewReader(data)}, 256, interf.Owned, impl.ErrInvalidStream},
		{"closed", &fakeConsumer{}, closedRam, 256, interf.Owned, impl.ErrInvalidStream},
		{"zero buffer", &fakeConsumer{}, impl.NewRamStream(data), 0, interf.Owned, impl.ErrInvalidBufferingSize},
		{"negative buffer", &fakeConsumer{}, impl.NewRamStream(data), -1, interf.Owned, impl.ErrInvalidBufferingSize},
		{"ownership", &fakeConsumer{}, impl.NewRamStream(data), 256, interf.Ownership(7), impl.ErrInvalidOwnership},
	}
	for _, tc := range tests {
		conf.BufferingSize = tc.bufSize
		conf.Ownership = tc.own

		var p interf.Provider
		var err error
		if tc.stream == nil {
			p, err = impl.NewSequentialProvider(tc.consumer, nil, conf)
		} else {
			p, err = impl.NewSequentialProvider(tc.consumer, tc.stream, conf)
		}
		if p != nil || !errors.Is(err, tc.err) {
			t.Errorf("%s: p=%v, err=%v", tc.name, p, err)
		}
		if c, ok := tc.consumer.(*fakeConsumer); ok && c.creates != 0 {
			t.Errorf("%s: callbacks registered", tc.name)
		}
	}

	// no close on invalid config
	s := &countingStream{Stream: impl.NewRamStream(data)}
	conf.Ownership = interf.Owned
	conf.BufferingSize = 0
	if _, err := impl.NewSequentialProvider(&fakeConsumer{}, s, conf); err == nil || s.closed != 0 || s.reads != 0 {
		t.Errorf("err=%v, closed=%d, reads=%d", err, s.closed, s.reads)
	}

	// consumer refuses the callbacks
	conf.BufferingSize = 256
	c := &fakeConsumer{fail: errBoom}
	if _, err := impl.NewSequentialProvider(c, s, conf); !errors.Is(err, errBoom) || s.closed != 0 {
		t.Errorf("err=%v, closed=%d", err, s.closed)
	}

	// valid
	c = &fakeConsumer{}
	p, err := impl.NewSequentialProvider(c, s, conf)
	if err != nil || p == nil || c.creates != 1 || c.seq == nil {
		t.Fatalf("p=%v, err=%v, creates=%d", p, err, c.creates)
	}
	if p.Size() != interf.UnknownSize {
		t.Errorf("size=%d", p.Size())
	}
	ts := &testStat{t: t, at: c.stat()}
	ts.ProvNew++
	ts.Check()
}

func Test_SequentialAdapter_GetBytes(t *testing.T) {
	data := impl.CountData(1000)
	s := &countingStream{Stream: impl.NewRamStream(data)}
	c := &fakeConsumer{}

	conf := interf.DefaultConfig()
	conf.BufferingSize = 256
	if _, err := impl.NewSequentialProvider(c, s, conf); err != nil {
		t.Fatal(err)
	}
	ts := &testStat{t: t, at: c.stat()}
	ts.ProvNew++

	// zero request: no read, no position change
	dst := make([]byte, 1000)
	if n := c.seq.GetBytes(dst, 0); n != 0 || s.reads != 0 || pos(t, s) != 0 {
		t.Fatalf("n=%d, reads=%d", n, s.reads)
	}
	if n := c.seq.GetBytes(nil, 10); n != 0 || s.reads != 0 {
		t.Fatalf("n=%d, reads=%d", n, s.reads)
	}
	ts.Check() //--------------------------------------------------------------------------------

	// all data in 4 rounds (256, 256, 256, 232)
	if n := c.seq.GetBytes(dst, 1000); n != 1000 || !bytes.Equal(dst, data) {
		t.Fatalf("n=%d", n)
	}
	if s.reads != 4 || pos(t, s) != 1000 {
		t.Fatalf("reads=%d, pos=%d", s.reads, pos(t, s))
	}
	ts.GetReq++
	ts.GetRound += 4
	ts.Check() //--------------------------------------------------------------------------------

	// end of data
	if n := c.seq.GetBytes(dst, 1); n != 0 {
		t.Fatalf("n=%d", n)
	}
	ts.GetReq++
	ts.GetShort++
	ts.Check() //--------------------------------------------------------------------------------

	// count is limited to the destination
	_ = c.seq.GetBytes(nil, 0)
	c.seq.Rewind()
	small := make([]byte, 10)
	if n := c.seq.GetBytes(small, 100); n != 10 || !bytes.Equal(small, data[:10]) || pos(t, s) != 10 {
		t.Fatalf("n=%d, b=%v", n, small)
	}
	ts.RewindReq++
	ts.GetReq++
	ts.GetRound++
	ts.Check() //--------------------------------------------------------------------------------
}

func Test_SequentialAdapter_ReadLength(t *testing.T) {
	data := impl.DemoData(1000, impl.DemoSeed)

	for _, bufSize := range []int{1, 7, 256, 999, 1000, interf.DefaultBufferingSize} {
		for _, count := range []int{1, 255, 256, 999, 1000, 1001, 5000} {
			s := impl.NewRamStream(data)
			c := &fakeConsumer{}
			conf := interf.DefaultConfig()
			conf.BufferingSize = bufSize
			if _, err := impl.NewSequentialProvider(c, s, conf); err != nil {
				t.Fatal(err)
			}

			// N <= remaining: N bytes. N > remaining: the remaining bytes (short read)
			want := count
			if want > len(data) {
				want = len(data)
			}
			dst := make([]byte, count)
			n := c.seq.GetBytes(dst, count)
			if n != want || !bytes.Equal(dst[:n], data[:want]) || pos(t, s) != int64(want) {
				t.Errorf("bufSize=%d, count=%d: n=%d, pos=%d", bufSize, count, n, pos(t, s))
			}
		}
	}
}

func Test_SequentialAdapter_SkipRewind(t *testing.T) {
	data := impl.CountData(1000)
	s := impl.NewRamStream(data)
	c := &fakeConsumer{}

	conf := interf.DefaultConfig()
	conf.BufferingSize = 64
	if _, err := impl.NewSequentialProvider(c, s, conf); err != nil {
		t.Fatal(err)
	}
	ts := &testStat{t: t, at: c.stat()}
	ts.ProvNew++

	// read 10, skip 90
	dst := make([]byte, 10)
	c.seq.GetBytes(dst, 10)
	c.seq.SkipBytes(90)
	if p := pos(t, s); p != 100 {
		t.Fatalf("pos=%d", p)
	}
	if n := c.seq.GetBytes(dst, 10); n != 10 || !bytes.Equal(dst, data[100:110]) {
		t.Fatalf("n=%d, b=%v", n, dst)
	}
	ts.GetReq += 2
	ts.GetRound += 2
	ts.SkipReq++
	ts.Check() //--------------------------------------------------------------------------------

	// skip nothing or backwards: no effect
	c.seq.SkipBytes(0)
	c.seq.SkipBytes(-50)
	if p := pos(t, s); p != 110 {
		t.Fatalf("pos=%d", p)
	}
	ts.Check() //--------------------------------------------------------------------------------

	// skip over the end, then read: end of data
	c.seq.SkipBytes(5000)
	if n := c.seq.GetBytes(dst, 10); n != 0 {
		t.Fatalf("n=%d", n)
	}
	ts.SkipReq++
	ts.GetReq++
	ts.GetShort++
	ts.Check() //--------------------------------------------------------------------------------

	// rewind: same bytes as a fresh stream
	c.seq.Rewind()
	got := make([]byte, 300)
	if n := c.seq.GetBytes(got, 300); n != 300 {
		t.Fatalf("n=%d", n)
	}
	fresh := make([]byte, 300)
	if _, err := impl.NewRamStream(data).Read(fresh); err != nil || !bytes.Equal(got, fresh) {
		t.Fatalf("rewind: err=%v", err)
	}
	ts.RewindReq++
	ts.GetReq++
	ts.GetRound += 5 // 64, 64, 64, 64, 44
	ts.Check()       //--------------------------------------------------------------------------------
}

func Test_SequentialAdapter_Faults(t *testing.T) {
	data := impl.CountData(1000)
	s := &countingStream{Stream: impl.NewRamStream(data), failAfter: 2, readErr: errBoom}
	c := &fakeConsumer{}

	conf := interf.DefaultConfig()
	conf.BufferingSize = 100
	if _, err := impl.NewSequentialProvider(c, s, conf); err != nil {
		t.Fatal(err)
	}
	ts := &testStat{t: t, at: c.stat()}
	ts.ProvNew++

	// two good rounds, then the fault: short read with the good bytes
	dst := make([]byte, 1000)
	if n := c.seq.GetBytes(dst, 1000); n != 200 || !bytes.Equal(dst[:200], data[:200]) {
		t.Fatalf("n=%d", n)
	}
	if err := c.err(); err != errBoom {
		t.Fatalf("err=%v", err)
	}
	ts.GetReq++
	ts.GetRound += 2
	ts.GetShort++
	ts.GetErr++
	ts.Check() //--------------------------------------------------------------------------------

	// seek faults
	s.seekErr = errors.New("seek fault")
	c.seq.Rewind()
	c.seq.SkipBytes(1)
	if err := c.err(); err != errBoom {
		t.Fatalf("the first fault must be kept: err=%v", err)
	}
	ts.RewindReq++
	ts.SkipReq++
	ts.SeekErr += 2
	ts.Check() //--------------------------------------------------------------------------------
}

func Test_SequentialAdapter_Release(t *testing.T) {
	for _, own := range []interf.Ownership{interf.Borrowed, interf.Owned} {
		s := &countingStream{Stream: impl.NewRamStream(impl.CountData(10))}
		c := &fakeConsumer{}
		conf := interf.DefaultConfig()
		conf.Ownership = own

		p, err := impl.NewSequentialProvider(c, s, conf)
		if err != nil {
			t.Fatal(err)
		}
		ts := &testStat{t: t, at: c.stat()}
		ts.ProvNew++

		// release (twice)
		p.Release()
		c.seq.ReleaseInfo() // contract violation: no effect

		should := 0
		if own == interf.Owned {
			should = 1
			ts.StreamClose++
		}
		if s.closed != should {
			t.Fatalf("%v: closed=%d, should=%d", own, s.closed, should)
		}
		ts.ProvRelease++
		ts.Check() //--------------------------------------------------------------------------------

		// released: no more reads
		if n := c.seq.GetBytes(make([]byte, 10), 10); n != 0 {
			t.Fatalf("n=%d", n)
		}
		c.seq.SkipBytes(1)
		c.seq.Rewind()
		if s.reads != 0 {
			t.Fatalf("reads=%d", s.reads)
		}
		ts.LateCall += 3
		ts.Check() //--------------------------------------------------------------------------------
	}
}

//--------------------------------------------------------------------------------------------------------------------//

func TestRace_SequentialAdapter(t *testing.T) {
	data := impl.CountData(1000)
	c := &fakeConsumer{}
	conf := interf.DefaultConfig()
	conf.BufferingSize = 16
	if _, err := impl.NewSequentialProvider(c, impl.NewRamStream(data), conf); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(5)
	for n := 0; n < 5; n++ {
		go func() {
			//------------------------------
			dst := make([]byte, 100)
			for i := 0; i < 1000; i++ {
				c.seq.GetBytes(dst, 1+i%100)
				c.seq.SkipBytes(1)
				if i%10 == 0 {
					c.seq.Rewind()
				}
				c.stat().Stat()
			}
			//------------------------------
			wg.Done()
		}()
	}
	wg.Wait()

	c.seq.ReleaseInfo()
}
