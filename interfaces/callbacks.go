package interf

// SequentialCallbacks is the callback set registered with a consumer for forward reading.
// The consumer calls one method at a time and ReleaseInfo exactly once, as the last call.
// No method has an error channel: a short read is the only signal (end-of-data or failure).
type SequentialCallbacks interface {

	// GetBytes copies up to count bytes from the current position into dst and returns the number of bytes copied.
	// A return value smaller than count signals end-of-data. count is limited to len(dst).
	GetBytes(dst []byte, count int) int

	// SkipBytes advances the position by count bytes without copying data.
	SkipBytes(count int64)

	// Rewind resets the position to the start of the stream.
	Rewind()

	// ReleaseInfo is the final teardown. The stream is disposed if it is owned.
	ReleaseInfo()
}

// DirectCallbacks is the callback set registered with a consumer for random access.
// Every GetBytesAtPosition call is independent of the calls before.
type DirectCallbacks interface {

	// GetBytePointer returns the whole data as one stable byte slice, or nil if this fast path is unsupported.
	GetBytePointer() []byte

	// ReleaseBytePointer returns a slice obtained by GetBytePointer.
	ReleaseBytePointer(p []byte)

	// GetBytesAtPosition copies up to count bytes starting at the absolute position into dst and returns
	// the number of bytes copied. Same short read contract as SequentialCallbacks.GetBytes.
	GetBytesAtPosition(dst []byte, position int64, count int) int

	// ReleaseInfo is the final teardown. The stream is disposed if it is owned.
	ReleaseInfo()
}

// ErrorReporter is implemented by callback sets that translate stream faults into short reads.
// Err returns the first fault or nil.
type ErrorReporter interface {
	Err() error
}

// Statistics returns the number of times internal processes have been run since initialization.
// This method is relevant for testing and debugging purposes.
// The KEY is the internal process, the VALUE is the count.
type Statistics interface {
	Stat() map[string]uint64
}
