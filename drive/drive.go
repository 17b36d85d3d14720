/*Package drive implements the read-ahead engine of a sockdrive client.

A Drive satisfies fixed-size sector reads and writes against a remote
server. Reads are fetched a block (ahead range × sector size) at a time,
decompressed, and retained in a bounded LRU cache; writes go through to
the server on every call and patch the cached block in place when it is
resident.

A Drive owns its connection, its scratch buffers and its cache; it is
synchronous and serves one request at a time. Issuing operations from
multiple goroutines is a caller bug.
*/
package drive

import (
	"time"

	"github.com/caiiiycuk/sockdrive/cache"
	"github.com/caiiiycuk/sockdrive/codec"
	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/errors"
	"github.com/caiiiycuk/sockdrive/frame"
	"github.com/caiiiycuk/sockdrive/log"
	"github.com/caiiiycuk/sockdrive/transport"
)

// Protocol command bytes, client to server.
const (
	CmdRead  byte = 1
	CmdWrite byte = 2
)

// ErrShortBuffer is returned when a caller's buffer
// doesn't hold a full sector.
var ErrShortBuffer = errors.New("buffer must hold a full sector")

// NewDrive creates a drive on top of an established connection.
// The drive takes ownership of the connection and closes it with Close.
// A zero geometry falls back to the stock drive template.
func NewDrive(conn transport.Conn, cfg config.DriveConfig, geometry config.Geometry, logger log.Logger) (*Drive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NopLogger()
	}
	if geometry == (config.Geometry{}) {
		geometry = config.DefaultGeometry()
		geometry.SectorSize = cfg.SectorSize
	}

	blockCache, err := cache.NewBlockCache(cfg.SectorSize, cfg.AheadRange, cfg.MemoryLimit)
	if err != nil {
		return nil, err
	}

	return &Drive{
		conn:       conn,
		log:        logger,
		sectorSize: cfg.SectorSize,
		aheadRange: cfg.AheadRange,
		aheadSize:  cfg.BlockSize(),
		readOnly:   cfg.ReadOnly,
		geometry:   geometry,
		cache:      blockCache,
		codec:      codec.NewBlockCodec(),
		block:      make([]byte, cfg.BlockSize()),
	}, nil
}

// Drive is a sector-addressable view of one remote volume
// over one connection.
type Drive struct {
	conn transport.Conn
	log  log.Logger

	sectorSize uint32
	aheadRange uint8
	aheadSize  uint32
	readOnly   bool
	geometry   config.Geometry

	cache *cache.BlockCache
	codec *codec.BlockCodec
	block []byte

	stats Stats
}

// Read copies the content of a sector into buf,
// which must hold at least one full sector.
//
// A sector whose block is cached is served locally; otherwise the
// containing block is fetched from the server, decoded and installed
// in the cache before the sector is copied out.
func (d *Drive) Read(sector uint32, buf []byte) error {
	if uint32(len(buf)) < d.sectorSize {
		return ErrShortBuffer
	}
	buf = buf[:d.sectorSize]

	if cached, ok := d.cache.Lookup(sector); ok {
		d.stats.CacheHits++
		copy(buf, cached)
		return nil
	}

	d.stats.CacheMisses++
	started := time.Now()

	origin := d.cache.OriginOf(sector)
	if err := frame.SendAll(d.conn, []byte{CmdRead}); err != nil {
		return statusErr(StatusSendCommand, err)
	}
	if err := frame.SendUint32(d.conn, origin); err != nil {
		return statusErr(StatusSendSector, err)
	}
	if err := frame.SendAll(d.conn, []byte{d.aheadRange}); err != nil {
		return statusErr(StatusSendPayload, err)
	}

	compressedSize, err := frame.RecvUint32(d.conn)
	if err != nil {
		return statusErr(StatusRecvLength, err)
	}

	// a raw payload lands in the block scratch directly,
	// a compressed one goes through the codec's scratch
	payload := d.block
	if compressedSize != d.aheadSize {
		payload, err = d.codec.Scratch(int(compressedSize))
		if err != nil {
			return statusErr(StatusPayloadTooLarge, err)
		}
	}
	if err := frame.RecvAll(d.conn, payload); err != nil {
		return statusErr(StatusRecvPayload, err)
	}

	if result, err := d.codec.DecompressBlock(payload, d.block); err != nil {
		return statusErr(Status(result), err)
	}

	if err := d.cache.Install(origin, d.block); err != nil {
		return err
	}

	offset := (sector - origin) * d.sectorSize
	copy(buf, d.block[offset:offset+d.sectorSize])

	d.stats.PayloadBytes += uint64(compressedSize)
	d.stats.ReadTime += time.Since(started)
	return nil
}

// Write sends the content of a sector to the server,
// patching the cached copy in place when its block is resident.
// src must hold at least one full sector.
//
// Writes are write-through and fire-and-forget: no acknowledgement
// is read back, the server serializes them with subsequent reads.
// On a read-only drive the cache is still patched but nothing
// is sent on the wire.
func (d *Drive) Write(sector uint32, src []byte) error {
	if uint32(len(src)) < d.sectorSize {
		return ErrShortBuffer
	}
	src = src[:d.sectorSize]

	d.cache.Patch(sector, src)

	if d.readOnly {
		return nil
	}

	if err := frame.SendAll(d.conn, []byte{CmdWrite}); err != nil {
		return statusErr(StatusSendCommand, err)
	}
	if err := frame.SendUint32(d.conn, sector); err != nil {
		return statusErr(StatusSendSector, err)
	}
	if err := frame.SendAll(d.conn, src); err != nil {
		return statusErr(StatusSendPayload, err)
	}

	d.stats.BytesWritten += uint64(d.sectorSize)
	return nil
}

// Close releases the connection and the cached blocks.
// Closing a drive with an in-flight operation is a caller bug.
func (d *Drive) Close() error {
	d.cache.Purge()
	err := d.conn.Close()
	if err != nil {
		d.log.Errorf("couldn't close drive connection: %v", err)
	}

	return err
}

// SectorSize returns the size of one sector in bytes.
func (d *Drive) SectorSize() uint32 {
	return d.sectorSize
}

// AheadRange returns the prefetch width in sectors.
func (d *Drive) AheadRange() uint8 {
	return d.aheadRange
}

// ReadOnly reports whether writes are dropped locally.
func (d *Drive) ReadOnly() bool {
	return d.readOnly
}

// Geometry returns the disk geometry the emulator should report.
func (d *Drive) Geometry() config.Geometry {
	return d.geometry
}

// Stats returns a snapshot of the drive's counters.
func (d *Drive) Stats() Stats {
	return d.stats
}

// CacheLen returns the number of blocks currently cached.
func (d *Drive) CacheLen() int {
	return d.cache.Len()
}
