package impl

import (
	"errors"
	"fmt"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
)

// Construction errors. The factories wrap them, use errors.Is.
var (
	ErrNoConsumer           = errors.New("no consumer")
	ErrInvalidStream        = errors.New("stream must be readable and seekable")
	ErrInvalidBufferingSize = errors.New("buffering size must be positive")
	ErrInvalidOwnership     = errors.New("unknown ownership")
	ErrInvalidSize          = errors.New("invalid stream size")
)

// validate checks all construction parameters of a provider and returns the stream as interf.Stream.
// Streams without Close get a no-op Close.
// Nothing is registered and nothing is closed here.
func validate(consumer interf.Consumer, r io.Reader, conf interf.Config) (interf.Stream, error) {
	if consumer == nil {
		return nil, ErrNoConsumer
	}
	if r == nil {
		return nil, fmt.Errorf("%w: stream is nil", ErrInvalidStream)
	}
	if conf.BufferingSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferingSize, conf.BufferingSize)
	}
	if conf.Ownership != interf.Borrowed && conf.Ownership != interf.Owned {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOwnership, conf.Ownership)
	}

	// must be seekable
	seeker, ok := r.(io.Seeker)
	if !ok {
		return nil, fmt.Errorf("%w: %T can't seek", ErrInvalidStream, r)
	}

	// ask the stream ...
	if c, ok := r.(interf.Capabilities); ok {
		if !c.CanRead() || !c.CanSeek() {
			return nil, fmt.Errorf("%w: canRead=%v, canSeek=%v", ErrInvalidStream, c.CanRead(), c.CanSeek())
		}
	}
	// ... and try it (pipes implement io.Seeker, but fail)
	if _, err := seeker.Seek(0, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStream, err)
	}

	// optional closer
	if s, ok := r.(interf.Stream); ok {
		return s, nil
	}
	return &_NopCloseStream{Reader: r, Seeker: seeker}, nil
}

// measure returns the size of the stream and restores the position.
func measure(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// ------------------------------------------------------------------------------------------------------------------ //

// interface check: interf.Stream
var _ interf.Stream = (*_NopCloseStream)(nil)

// _NopCloseStream adds a Close without effect to a read seeker.
type _NopCloseStream struct {
	io.Reader
	io.Seeker
}

func (s *_NopCloseStream) Close() error {
	return nil
}
