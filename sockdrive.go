/*Package sockdrive exposes remote block devices as sector-addressable
random-access stores, behind the opaque-handle facade emulators consume.

Open dials a sockdrive server (plain TCP or the WebSocket service),
wires up the drive's read-ahead cache and returns a non-zero handle;
Read, Write and the geometry accessors then operate on that handle.
Go callers that want richer error reporting can use OpenDrive and work
with the *drive.Drive directly instead.
*/
package sockdrive

import (
	"sync"

	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/drive"
	"github.com/caiiiycuk/sockdrive/log"
	"github.com/caiiiycuk/sockdrive/transport"
)

// Handle identifies an open drive.
type Handle uint64

// InvalidHandle is returned by Open when the connection
// or the handshake fails.
const InvalidHandle Handle = 0

var (
	handleMux sync.Mutex // protects following
	handleSeq Handle
	drives    = make(map[Handle]*drive.Drive)
)

// Open connects to a sockdrive endpoint with default drive settings
// and registers the drive under a fresh handle.
// It returns InvalidHandle when the drive can't be opened;
// the failure is logged, matching the facade's numeric contract.
func Open(url, owner, name, token string) Handle {
	creds := config.Credentials{Owner: owner, Name: name, Token: token}
	d, err := OpenDrive(url, creds, config.NewDefaultDriveConfig())
	if err != nil {
		log.Errorf("couldn't open sockdrive %s: %v", url, err)
		return InvalidHandle
	}

	handleMux.Lock()
	handleSeq++
	handle := handleSeq
	drives[handle] = d
	handleMux.Unlock()

	return handle
}

// OpenDrive dials a sockdrive endpoint and builds a drive on top of it.
//
// On WebSocket endpoints the server's handshake overrides the configured
// ahead range, may force the drive read-only, and may adjust the reported
// image size. Plain TCP endpoints use the configuration as given.
func OpenDrive(endpoint string, creds config.Credentials, cfg config.DriveConfig) (*drive.Drive, error) {
	conn, info, err := transport.Dial(endpoint, creds)
	if err != nil {
		return nil, err
	}

	geometry := config.DefaultGeometry()
	geometry.SectorSize = cfg.SectorSize
	if info != nil {
		cfg.AheadRange = info.AheadRange
		cfg.ReadOnly = cfg.ReadOnly || info.ReadOnly
		if info.SizeKiB > 0 {
			geometry.Size = info.SizeKiB * 1024 / cfg.SectorSize
		}
	}

	d, err := drive.NewDrive(conn, cfg, geometry, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return d, nil
}

// Read copies the content of a sector into buf,
// which must hold at least sector_size bytes.
func Read(handle Handle, sector uint32, buf []byte) drive.Status {
	d := lookup(handle)
	if d == nil {
		return drive.StatusInvalidHandle
	}

	return drive.StatusOf(d.Read(sector, buf))
}

// Write sends the content of buf to a sector,
// buf must hold at least sector_size bytes.
func Write(handle Handle, sector uint32, buf []byte) drive.Status {
	d := lookup(handle)
	if d == nil {
		return drive.StatusInvalidHandle
	}

	return drive.StatusOf(d.Write(sector, buf))
}

// Close drops the handle and releases the drive's connection and cache.
// Closing an unknown handle is a no-op.
func Close(handle Handle) {
	handleMux.Lock()
	d, ok := drives[handle]
	delete(drives, handle)
	handleMux.Unlock()

	if ok {
		d.Close()
	}
}

// Size returns the total sector count of the drive.
func Size(handle Handle) uint32 {
	return geometry(handle).Size
}

// Heads returns the head count of the emulated disk geometry.
func Heads(handle Handle) uint32 {
	return geometry(handle).Heads
}

// Sectors returns the sectors-per-track of the emulated disk geometry.
func Sectors(handle Handle) uint32 {
	return geometry(handle).Sectors
}

// Cylinders returns the cylinder count of the emulated disk geometry.
func Cylinders(handle Handle) uint32 {
	return geometry(handle).Cylinders
}

// SectorSize returns the sector size of the drive in bytes.
func SectorSize(handle Handle) uint32 {
	return geometry(handle).SectorSize
}

func lookup(handle Handle) *drive.Drive {
	handleMux.Lock()
	defer handleMux.Unlock()
	return drives[handle]
}

func geometry(handle Handle) config.Geometry {
	if d := lookup(handle); d != nil {
		return d.Geometry()
	}

	return config.DefaultGeometry()
}
