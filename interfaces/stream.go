package interf

import "io"

// Stream is the capability a provider pulls its bytes from.
// Read reads up to len(p) bytes at the current position and advances it.
// Seek changes the position (only io.SeekStart and io.SeekCurrent are used by the providers,
// io.SeekEnd only to measure a stream of unknown size). Close disposes the stream.
//
// A stream is exclusively driven by one provider for its entire lifetime.
// It is disposed by the provider only if the provider owns it (see Ownership).
type Stream interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Capabilities is implemented by streams that can tell whether they are readable and seekable.
// The providers check it once at construction if present. Streams without it are probed with
// a Seek(0, io.SeekCurrent) call instead.
type Capabilities interface {
	CanRead() bool
	CanSeek() bool
}
