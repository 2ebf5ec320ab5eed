package decoder

import (
	"errors"
	"fmt"
	impl "github.com/SchnorcherSepp/dataprovider/defaultimpl"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	_ "golang.org/x/image/bmp" // register format
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register format
	"image"
	_ "image/gif"  // register format
	_ "image/jpeg" // register format
	_ "image/png"  // register format
	"io"
	"log"
	"sync"
)

// ErrReleased is returned by all reads after Release.
var ErrReleased = errors.New("decoder: source is released")

// ErrNotRandomAccess is returned by ReadAt and io.SeekEnd of sequential sources.
var ErrNotRandomAccess = errors.New("decoder: sequential source")

// interface check
var _ interf.Provider = (*Source)(nil)
var _ io.ReadSeeker = (*Source)(nil)
var _ io.ReaderAt = (*Source)(nil)

// Source is the provider handle of the decoder.
// It pulls bytes through the registered callbacks, one call at a time, and calls ReleaseInfo exactly once.
// A Source is an io.ReadSeeker. Sources with random access callbacks are also an io.ReaderAt.
type Source struct {
	mux      *sync.Mutex
	seq      interf.SequentialCallbacks // nil for random access
	direct   interf.DirectCallbacks     // nil for sequential access
	ptr      []byte                     // byte pointer fast path (optional, random access only)
	size     int64                      // interf.UnknownSize for sequential access
	pos      int64                      // read cursor
	released bool
	debugLvl uint8
}

func newSource(seq interf.SequentialCallbacks, direct interf.DirectCallbacks, size int64, debugLvl uint8) *Source {
	s := &Source{
		mux:      new(sync.Mutex),
		seq:      seq,
		direct:   direct,
		size:     size,
		debugLvl: debugLvl,
	}

	// use the byte pointer if offered
	if direct != nil {
		if p := direct.GetBytePointer(); p != nil && int64(len(p)) >= size {
			s.ptr = p[:size]
		} else if p != nil {
			direct.ReleaseBytePointer(p) // too short: not usable
		}
	}

	if debugLvl >= impl.DebugHigh {
		log.Printf("DEBUG: decoder/newSource: sequential=%v, size=%d, pointer=%v", seq != nil, size, s.ptr != nil)
	}
	return s
}

// Size returns the declared size or interf.UnknownSize for sequential sources.
func (s *Source) Size() int64 {
	return s.size
}

// Sequential reports whether the source was registered with sequential callbacks.
func (s *Source) Sequential() bool {
	return s.seq != nil
}

// Release drops the source. ReleaseInfo is called on the first call only.
func (s *Source) Release() {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.released {
		return
	}
	s.released = true

	if s.seq != nil {
		s.seq.ReleaseInfo()
		return
	}
	if s.ptr != nil {
		s.direct.ReleaseBytePointer(s.ptr)
		s.ptr = nil
	}
	s.direct.ReleaseInfo()
}

//--------  IO  ------------------------------------------------------------------------------------------------------//

// Read reads up to len(p) bytes at the cursor.
func (s *Source) Read(p []byte) (int, error) {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.released {
		return 0, ErrReleased
	}
	if len(p) == 0 {
		return 0, nil
	}

	var n int
	if s.seq != nil {
		n = s.seq.GetBytes(p, len(p))
	} else {
		n = s.getAt(p, s.pos)
	}
	s.pos += int64(n)

	if n == 0 {
		return 0, s.eof()
	}
	return n, nil
}

// ReadAt reads len(p) bytes at the absolute offset off. Sequential sources return ErrNotRandomAccess.
// The cursor of Read is not changed.
func (s *Source) ReadAt(p []byte, off int64) (int, error) {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.released {
		return 0, ErrReleased
	}
	if s.seq != nil {
		return 0, ErrNotRandomAccess
	}
	if off < 0 {
		return 0, errors.New("decoder/Source.ReadAt: negative offset")
	}
	if len(p) == 0 {
		return 0, nil
	}

	n := s.getAt(p, off)
	if n < len(p) {
		return n, s.eof()
	}
	return n, nil
}

// Seek moves the cursor. Sequential sources skip forward and rewind (and skip) backwards,
// io.SeekEnd needs a known size.
func (s *Source) Seek(offset int64, whence int) (int64, error) {
	s.mux.Lock() // LOCK
	defer s.mux.Unlock()

	if s.released {
		return 0, ErrReleased
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		if s.size == interf.UnknownSize {
			return 0, fmt.Errorf("decoder/Source.Seek: %w (unknown size)", ErrNotRandomAccess)
		}
		abs = s.size + offset
	default:
		return 0, errors.New("decoder/Source.Seek: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("decoder/Source.Seek: negative position")
	}

	// random access: the cursor is all we need
	if s.seq == nil {
		s.pos = abs
		return abs, nil
	}

	// sequential access
	if abs < s.pos || abs == 0 {
		s.seq.Rewind()
		s.pos = 0
	}
	if abs > s.pos {
		s.seq.SkipBytes(abs - s.pos)
		s.pos = abs
	}
	return abs, nil
}

// getAt reads with the random access callbacks. Caller must hold the lock.
func (s *Source) getAt(p []byte, off int64) int {
	if s.ptr != nil {
		if off >= int64(len(s.ptr)) {
			return 0
		}
		return copy(p, s.ptr[off:])
	}
	return s.direct.GetBytesAtPosition(p, off, len(p))
}

// eof returns the stream fault recorded by the callbacks, or io.EOF.
func (s *Source) eof() error {
	if err := s.fault(); err != nil {
		return err
	}
	return io.EOF
}

// fault returns the stream fault recorded by the callbacks, if they report faults.
func (s *Source) fault() error {
	var r interf.ErrorReporter
	var ok bool
	if s.seq != nil {
		r, ok = s.seq.(interf.ErrorReporter)
	} else {
		r, ok = s.direct.(interf.ErrorReporter)
	}
	if !ok {
		return nil
	}
	return r.Err()
}

//--------  IMAGE  ---------------------------------------------------------------------------------------------------//

// DecodeConfig rewinds the source and decodes the color model and dimensions of the image.
// The name of the format is returned as well (e.g. "png").
func (s *Source) DecodeConfig() (image.Config, string, error) {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return image.Config{}, "", err
	}

	cfg, format, err := image.DecodeConfig(s.reader())
	if err != nil {
		return cfg, format, s.wrap("DecodeConfig", err)
	}

	if s.debugLvl >= impl.DebugLow {
		log.Printf("DEBUG: decoder/Source.DecodeConfig: format=%s, width=%d, height=%d", format, cfg.Width, cfg.Height)
	}
	return cfg, format, nil
}

// Decode rewinds the source and decodes the image.
// TIFF images of random access sources are decoded through io.ReaderAt (no full copy of the stream).
func (s *Source) Decode() (image.Image, string, error) {
	var img image.Image
	var format string
	var err error

	if s.seq == nil {
		// sniff the format first
		if _, format, err = s.DecodeConfig(); err != nil {
			return nil, format, err
		}
	}

	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return nil, format, err
	}

	if format == "tiff" {
		img, err = tiff.Decode(s.reader())
	} else {
		img, format, err = image.Decode(s.reader())
	}
	if err != nil {
		return nil, format, s.wrap("Decode", err)
	}

	if s.debugLvl >= impl.DebugLow {
		log.Printf("DEBUG: decoder/Source.Decode: format=%s, bounds=%v", format, img.Bounds())
	}
	return img, format, nil
}

// reader returns the source as io.Reader for the image decoders.
// Random access sources come as io.SectionReader, which is also an io.ReaderAt.
func (s *Source) reader() io.Reader {
	if s.seq != nil {
		return s
	}
	return io.NewSectionReader(s, 0, s.size)
}

// wrap adds the operation and the recorded stream fault to a decoder error.
func (s *Source) wrap(op string, err error) error {
	s.mux.Lock() // LOCK
	fault := s.fault()
	s.mux.Unlock()

	if fault != nil && !errors.Is(err, fault) {
		return fmt.Errorf("decoder/%s: %v: %w", op, err, fault)
	}
	return fmt.Errorf("decoder/%s: %w", op, err)
}
