package impl

import (
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"io"
	"os"
)

// interface check: interf.Stream
var _ interf.Stream = (*_SectionStream)(nil)
var _ interf.Capabilities = (*_SectionStream)(nil)

// _SectionStream is a Stream over a part of an io.ReaderAt.
type _SectionStream struct {
	section *io.SectionReader
	inner   io.ReaderAt
	closed  bool
}

// NewSectionStream exposes n bytes of r, starting at offset off, as a Stream.
// Close closes r if r is an io.Closer. The stream is not thread safe.
func NewSectionStream(r io.ReaderAt, off, n int64) interf.Stream {
	// enforce min n = 0
	if n < 0 {
		n = 0
	}
	return &_SectionStream{
		section: io.NewSectionReader(r, off, n),
		inner:   r,
	}
}

func (s *_SectionStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.section.Read(p)
}

func (s *_SectionStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.section.Seek(offset, whence)
}

// Close the section. Has no effect after the first call.
func (s *_SectionStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *_SectionStream) CanRead() bool {
	return !s.closed
}

func (s *_SectionStream) CanSeek() bool {
	return !s.closed
}
