package impl

import (
	interf "github.com/SchnorcherSepp/dataprovider/interfaces"
	"github.com/oxtoacart/bpool"
	"io"
)

// _SectorReader serves random reads of a stream from a sector cache.
// A stream is divided into sectors of interf.SectorSize, addressed with the sector number (first sector is 0).
// Missing sectors are read with the transfer of the provider and stored in the cache.
// Not thread safe: the direct adapter holds its lock.
type _SectorReader struct {
	stream   interf.Stream   // source of missing sectors
	transfer *_Transfer      // buffered copy of missing sectors
	cache    interf.Cache    // for caching sectors
	pool     *bpool.BytePool // the byte pool avoids allocating memory (from cache)
	stat     *_ProviderStat  // collects statistical data about internal processes
	id       string          // cache key
}

func newSectorReader(s interf.Stream, t *_Transfer, c interf.Cache, stat *_ProviderStat, id string) *_SectorReader {
	return &_SectorReader{
		stream:   s,
		transfer: t,
		cache:    c,
		pool:     c.Pool(),
		stat:     stat,
		id:       id,
	}
}

// readAt reads len(p) bytes starting at the absolute offset off.
// n < len(p) means end-of-data (err == nil) or a stream fault (err != nil).
func (r *_SectorReader) readAt(p []byte, off int64) (int, error) {
	if len(p) == 0 || off < 0 {
		return 0, nil // read nothing -> return nothing
	}

	// buffer from pool
	buf := r.pool.Get()
	defer r.pool.Put(buf)

	// read sectors
	sector, innerOff := calcSector(off)
	read := 0
	for {
		// read sector
		b, err := r.getSector(buf, sector)

		// cut inner offset
		if len(b) < innerOff {
			b = b[len(b):] // nothing left (data are not in this slice! inner offset is to high)
		} else {
			b = b[innerOff:]
		}

		// copy to return buffer
		n := copy(p[read:], b)

		// update vars
		sector++     // next sector
		innerOff = 0 // innerOff is 0 after first read
		read += n    // update read n

		// exit
		if n == 0 || err != nil || read == len(p) {
			return read, err
		}
	}
}

// getSector returns the requested sector, from the cache or from the stream.
// A sector shorter than interf.SectorSize is the last one.
// This method doesn't allocate memory when the capacity of buf is greater or equal to interf.SectorSize.
func (r *_SectorReader) getSector(buf []byte, sector uint64) ([]byte, error) {
	// ask cache
	b, err := r.cache.Get(r.id, sector, buf)
	r.stat.CacheGet(r.id, sector, len(b), err) // DEBUG
	if err == nil {
		return b, nil
	}

	// seek to the sector
	off := int64(sector * interf.SectorSize)
	if _, err := r.stream.Seek(off, io.SeekStart); err != nil {
		r.stat.SeekErr(r.id, off, io.SeekStart, err) // ERROR
		return buf[:0], err
	}

	// read the whole sector
	n, err := r.transfer.copyFrom(r.stream, buf, interf.SectorSize)

	// cache only complete reads (a fault may have cut the sector)
	if n > 0 && err == nil {
		errSet := r.cache.Set(r.id, sector, buf[:n])
		r.stat.CacheSet(r.id, sector, n, errSet) // DEBUG
	}

	return buf[:n], err
}

// calcSector calculates in which sector the first byte begins with a inner offset.
func calcSector(offset int64) (sector uint64, innerOff int) {
	if offset >= 0 {
		// valid offset -> calc stuff
		innerOff = int(offset % interf.SectorSize)
		sector = uint64(offset-int64(innerOff)) / interf.SectorSize
		return

	} else {
		// invalid offset -> return 0
		return 0, 0
	}
}
