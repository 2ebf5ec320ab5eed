package impl

import (
	"encoding/binary"
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"github.com/coocood/freecache"
	"github.com/oxtoacart/bpool"
)

// interface check: interf.Cache
var _ interf.Cache = (*_Cache)(nil)

// @see interf.Cache
//
// Cache stores sectors (data blocks of a stream) for a performant random read access.
// If possible, there should only be one common large cache (reuse the object in your program).
type _Cache struct {
	cache *freecache.Cache // RAM cache for sectors
	pool  *bpool.BytePool  // buffer pool
	size  int64            // capacity in bytes
}

// NewCache return the default implementation of interf.Cache.
// cacheSizeMB can't be less than 17 (min. 1024 * SectorSize =~ 17 MB).
func NewCache(cacheSizeMB int) interf.Cache {
	// cache min. size
	min := ((1024 * interf.SectorSize) / (1024 * 1024)) + 1
	if cacheSizeMB < min {
		cacheSizeMB = min
	}

	// init freeCache
	cacheSize := cacheSizeMB * 1024 * 1024
	fCache := freecache.NewCache(cacheSize) // > 17 MB

	return &_Cache{
		cache: fCache,
		pool:  bpool.NewBytePool(interf.CachePoolBuffers, interf.SectorSize), // ~ 5 MB
		size:  int64(cacheSize),
	}
}

// @see interf.Cache
func (c *_Cache) Get(streamId string, sector uint64, buf []byte) ([]byte, error) {
	key := c.calcCacheKey(streamId, sector)
	return c.cache.GetWithBuf(key, buf)
}

// @see interf.Cache
func (c *_Cache) Set(streamId string, sector uint64, data []byte) error {
	key := c.calcCacheKey(streamId, sector)
	return c.cache.Set(key, data, interf.CacheExpireSeconds)
}

// @see interf.Cache
func (c *_Cache) Pool() *bpool.BytePool {
	return c.pool
}

// @see interf.Cache
func (c *_Cache) Size() int64 {
	return c.size
}

//-----  HELPER  -----------------------------------------------------------------------------------------------------//

// calcCacheKey converts streamId and a sector into a byte key for freeCache.
func (c *_Cache) calcCacheKey(streamId string, sector uint64) []byte {
	var bKey [8]byte
	binary.LittleEndian.PutUint64(bKey[:], sector)
	return append(bKey[:], []byte(streamId)...)
}
