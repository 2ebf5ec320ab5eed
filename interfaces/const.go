package interf

// DefaultBufferingSize is the size of the intermediate buffer used by the transfer of a provider
// when nothing else is configured (see DefaultConfig).
const DefaultBufferingSize = 512 * 1024 // 512 KiB

// PoolBuffers is the number of intermediate buffers kept for reuse by one provider.
// Only one transfer is in flight at a time, the second buffer covers overlapping calls of a misbehaving consumer.
const PoolBuffers = 2

// SectorSize is the size of a sector. A sector is a part of a stream.
// It is comparable to sectors of a block device.
// The direct provider reads and caches whole sectors if a cache is configured.
const SectorSize = 16384 // 16 kiB

// CacheExpireSeconds is the default value n. The cache stores data for max. n seconds.
const CacheExpireSeconds = 2 * 60 * 60 // 2 hours

// CachePoolBuffers is the number of sector buffers in the byte pool of a cache (see Cache.Pool).
const CachePoolBuffers = 300 // ~ 5 MB

// UnknownSize marks a stream without a declared length.
// Sequential providers always report it. A direct provider created with it measures the stream once.
const UnknownSize = -1
