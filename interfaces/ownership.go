package interf

// Ownership decides whether a provider disposes its stream when the consumer releases it.
type Ownership uint8

const (
	// Borrowed streams stay open after release. The caller closes them.
	Borrowed Ownership = iota

	// Owned streams are closed exactly once, when the consumer releases the provider.
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}
