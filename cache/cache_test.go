package cache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlock(fill byte, size int) []byte {
	return bytes.Repeat([]byte{fill}, size)
}

func TestNewBlockCache(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.MaxEntries(),
		"64 bytes budget fits two 32-byte blocks")

	// the budget must fit at least one block
	cache, err = NewBlockCache(8, 4, 31)
	assert.Error(t, err)
	assert.Nil(t, cache)

	_, err = NewBlockCache(0, 4, 64)
	assert.Error(t, err, "zero sector size is invalid")

	_, err = NewBlockCache(8, 0, 64)
	assert.Error(t, err, "zero ahead range is invalid")
}

func TestOriginOf(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	for sector := uint32(0); sector < 64; sector++ {
		origin := cache.OriginOf(sector)
		assert.Zero(t, origin%4, "origins are aligned to the ahead range")
		assert.True(t, sector >= origin && sector-origin < 4,
			"a sector belongs to the block at its origin")
	}
}

func TestLookupMissAndHit(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	_, ok := cache.Lookup(2)
	assert.False(t, ok, "fresh cache serves nothing")

	block := []byte("AAAAAAAABBBBBBBBCCCCCCCCDDDDDDDD")
	require.NoError(t, cache.Install(0, block))

	sector, ok := cache.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, []byte("CCCCCCCC"), sector)

	sector, ok = cache.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, []byte("DDDDDDDD"), sector)

	_, ok = cache.Lookup(4)
	assert.False(t, ok, "the next block is not resident")
}

func TestInstallValidation(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	assert.Error(t, cache.Install(2, testBlock('x', 32)),
		"misaligned origins are rejected")
	assert.Error(t, cache.Install(0, testBlock('x', 16)),
		"partial blocks are rejected")
}

func TestInstallCopiesAndOverwrites(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	block := testBlock('a', 32)
	require.NoError(t, cache.Install(0, block))

	// the cache owns its blocks, mutating the source is invisible
	block[0] = 'z'
	sector, ok := cache.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, byte('a'), sector[0])

	// reinstalling an origin overwrites in place without growing
	require.NoError(t, cache.Install(0, testBlock('b', 32)))
	sector, ok = cache.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, byte('b'), sector[0])
	assert.Equal(t, 1, cache.Len())
}

func TestPatch(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	assert.False(t, cache.Patch(2, testBlock('x', 8)),
		"patching a non-resident block is a no-op")

	require.NoError(t, cache.Install(0, testBlock('a', 32)))
	assert.True(t, cache.Patch(2, []byte("XXXXXXXX")))

	sector, ok := cache.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, []byte("XXXXXXXX"), sector)

	// neighbours are untouched
	sector, ok = cache.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, testBlock('a', 8), sector)
}

func TestLRUEviction(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)
	require.Equal(t, 2, cache.MaxEntries())

	require.NoError(t, cache.Install(0, testBlock('a', 32)))
	require.NoError(t, cache.Install(4, testBlock('b', 32)))
	require.NoError(t, cache.Install(8, testBlock('c', 32)))

	assert.Equal(t, 2, cache.Len(), "capacity holds after eviction")

	_, ok := cache.Lookup(0)
	assert.False(t, ok, "the least-recently-used block is gone")
	_, ok = cache.Lookup(4)
	assert.True(t, ok)
	_, ok = cache.Lookup(8)
	assert.True(t, ok)
}

func TestLookupRefreshesRecency(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	require.NoError(t, cache.Install(0, testBlock('a', 32)))
	require.NoError(t, cache.Install(4, testBlock('b', 32)))

	// touch origin 0, making origin 4 the eviction candidate
	_, ok := cache.Lookup(1)
	require.True(t, ok)

	require.NoError(t, cache.Install(8, testBlock('c', 32)))

	_, ok = cache.Lookup(0)
	assert.True(t, ok, "a recent lookup protects the block")
	_, ok = cache.Lookup(4)
	assert.False(t, ok)
}

func TestPatchRefreshesRecency(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 64)
	require.NoError(t, err)

	require.NoError(t, cache.Install(0, testBlock('a', 32)))
	require.NoError(t, cache.Install(4, testBlock('b', 32)))

	require.True(t, cache.Patch(2, []byte("XXXXXXXX")))
	require.NoError(t, cache.Install(8, testBlock('c', 32)))

	_, ok := cache.Lookup(0)
	assert.True(t, ok, "a recent patch protects the block")
	_, ok = cache.Lookup(4)
	assert.False(t, ok)
}

func TestMemUsedAndPurge(t *testing.T) {
	cache, err := NewBlockCache(8, 4, 128)
	require.NoError(t, err)

	assert.Zero(t, cache.MemUsed())

	require.NoError(t, cache.Install(0, testBlock('a', 32)))
	require.NoError(t, cache.Install(4, testBlock('b', 32)))
	assert.Equal(t, 64, cache.MemUsed())

	cache.Purge()
	assert.Zero(t, cache.Len())
	assert.Zero(t, cache.MemUsed())
}
