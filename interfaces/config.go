package interf

// Config holds the construction parameters of a provider.
type Config struct {
	Ownership     Ownership // dispose the stream at release?
	BufferingSize int       // size of the intermediate buffer, must be > 0
	Cache         Cache     // sector cache, direct providers only; nil disables the cache
	CacheId       string    // key of the stream in the cache; empty generates a random id
	DebugLvl      uint8     // enable debug logging [0, 1, 2] (level: high=2)
}

// DefaultConfig returns a config for a borrowed stream with DefaultBufferingSize and without cache.
func DefaultConfig() Config {
	return Config{
		Ownership:     Borrowed,
		BufferingSize: DefaultBufferingSize,
	}
}
