/*Package cache holds the decompressed blocks of a drive's read-ahead window.

Blocks are keyed by their origin sector and evicted in strict LRU order,
bounded by the memory budget the cache was constructed with.
The cache owns its blocks exclusively: callers receive slices
borrowed until the next mutation, never stored references.
*/
package cache

import (
	"github.com/bluele/gcache"

	"github.com/caiiiycuk/sockdrive/errors"
)

// NewBlockCache creates a block cache for blocks of
// aheadRange sectors, bounded by memoryLimit bytes.
func NewBlockCache(sectorSize uint32, aheadRange uint8, memoryLimit uint32) (*BlockCache, error) {
	if sectorSize == 0 {
		return nil, errors.New("block cache requires a non-zero sector size")
	}
	if aheadRange == 0 {
		return nil, errors.New("block cache requires a non-zero ahead range")
	}

	blockSize := sectorSize * uint32(aheadRange)
	maxEntries := int(memoryLimit / blockSize)
	if maxEntries < 1 {
		return nil, errors.Newf(
			"memory limit of %d bytes doesn't fit a single %d-byte block",
			memoryLimit, blockSize)
	}

	return &BlockCache{
		sectorSize: sectorSize,
		aheadRange: aheadRange,
		blockSize:  blockSize,
		maxEntries: maxEntries,
		lru:        gcache.New(maxEntries).LRU().Build(),
	}, nil
}

// BlockCache is a fixed-capacity LRU over decompressed blocks,
// keyed by block origin. It serves (and is mutated by) a single drive.
type BlockCache struct {
	sectorSize uint32
	aheadRange uint8
	blockSize  uint32
	maxEntries int
	lru        gcache.Cache
}

// OriginOf returns the origin sector of the block containing sector.
func (c *BlockCache) OriginOf(sector uint32) uint32 {
	return sector - sector%uint32(c.aheadRange)
}

// Lookup returns the cached content of a single sector, or a miss.
// The returned slice is borrowed from the containing block
// and is only valid until the next cache mutation.
// A hit refreshes the recency of the containing block.
func (c *BlockCache) Lookup(sector uint32) ([]byte, bool) {
	origin := c.OriginOf(sector)
	value, err := c.lru.GetIFPresent(origin)
	if err != nil {
		return nil, false
	}

	offset := (sector - origin) * c.sectorSize
	block := value.([]byte)
	return block[offset : offset+c.sectorSize], true
}

// Patch overwrites the cached content of a single sector in place,
// refreshing the recency of the containing block.
// It reports whether the containing block was resident,
// a miss leaves the cache untouched.
func (c *BlockCache) Patch(sector uint32, src []byte) bool {
	origin := c.OriginOf(sector)
	value, err := c.lru.GetIFPresent(origin)
	if err != nil {
		return false
	}

	offset := (sector - origin) * c.sectorSize
	block := value.([]byte)
	copy(block[offset:offset+c.sectorSize], src[:c.sectorSize])
	return true
}

// Install stores a copy of block under the given origin.
// An already resident origin is overwritten in place,
// otherwise a new entry is inserted, evicting the
// least-recently-used block when the cache is full.
func (c *BlockCache) Install(origin uint32, block []byte) error {
	if origin%uint32(c.aheadRange) != 0 {
		return errors.Newf("origin %d is not aligned to the ahead range", origin)
	}
	if uint32(len(block)) != c.blockSize {
		return errors.Newf(
			"block of %d bytes installed, expected %d bytes", len(block), c.blockSize)
	}

	if value, err := c.lru.GetIFPresent(origin); err == nil {
		copy(value.([]byte), block)
		return nil
	}

	owned := make([]byte, c.blockSize)
	copy(owned, block)
	return c.lru.Set(origin, owned)
}

// Len returns the number of resident blocks.
func (c *BlockCache) Len() int {
	return c.lru.Len(true)
}

// MaxEntries returns the block capacity computed at construction.
func (c *BlockCache) MaxEntries() int {
	return c.maxEntries
}

// MemUsed returns the memory held by resident blocks, in bytes.
func (c *BlockCache) MemUsed() int {
	return c.Len() * int(c.blockSize)
}

// Purge discards every resident block.
func (c *BlockCache) Purge() {
	c.lru.Purge()
}
