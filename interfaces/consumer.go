package interf

// Consumer is the byte consumer (e.g. an image decoder) providers register their callbacks with.
// From then on the consumer drives all I/O. The providers never start a read on their own.
type Consumer interface {

	// CreateSequential registers a sequential callback set and returns the provider handle.
	CreateSequential(cb SequentialCallbacks) (Provider, error)

	// CreateDirect registers a random access callback set for a stream with the given total size.
	// The size is communicated once and never queried again.
	CreateDirect(size int64, cb DirectCallbacks) (Provider, error)
}

// Provider is the opaque handle a consumer returns for one registered callback set.
type Provider interface {

	// Size is the declared total size or UnknownSize for sequential providers.
	Size() int64

	// Release drops the handle. The consumer calls ReleaseInfo of the callback set exactly once.
	Release()
}
