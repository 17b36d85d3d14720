/*Package backup streams full drive images to and from local storage.

An export reads every sector of a remote drive through its read-ahead
cache and writes them, compressed, to a local sink; an import plays a
compressed image back to the server sector by sector.
*/
package backup

import (
	"io"

	"github.com/caiiiycuk/sockdrive/drive"
	"github.com/caiiiycuk/sockdrive/errors"
)

// Export streams the sectors [0, sectors) of a drive into dst,
// compressed with the given compression type.
func Export(d *drive.Drive, sectors uint32, ct CompressionType, dst io.Writer) error {
	if err := ct.validate(); err != nil {
		return err
	}
	if sectors == 0 {
		return errors.New("can't export an empty sector range")
	}

	compressor, err := NewCompressor(ct)
	if err != nil {
		return err
	}

	src := &driveReader{
		drive:   d,
		sectors: sectors,
		buf:     make([]byte, d.SectorSize()),
	}
	return errors.Wrap(compressor.Compress(src, dst), "image export failed")
}

// Import plays a compressed image from src back to the drive,
// starting at sector 0. It returns the number of sectors written.
// A trailing partial sector is zero-padded.
func Import(d *drive.Drive, ct CompressionType, src io.Reader) (uint32, error) {
	if err := ct.validate(); err != nil {
		return 0, err
	}

	decompressor, err := NewDecompressor(ct)
	if err != nil {
		return 0, err
	}

	dst := &driveWriter{
		drive:      d,
		sectorSize: int(d.SectorSize()),
	}
	err = decompressor.Decompress(src, dst)
	if err != nil {
		return dst.sector, errors.Wrap(err, "image import failed")
	}

	return dst.sector, dst.flush()
}

// driveReader exposes a sector range of a drive as an io.Reader.
type driveReader struct {
	drive   *drive.Drive
	sectors uint32
	sector  uint32
	buf     []byte
	rest    []byte
}

// Read implements io.Reader.Read
func (r *driveReader) Read(p []byte) (int, error) {
	if len(r.rest) == 0 {
		if r.sector >= r.sectors {
			return 0, io.EOF
		}
		if err := r.drive.Read(r.sector, r.buf); err != nil {
			return 0, errors.Wrapf(err, "couldn't read sector %d", r.sector)
		}
		r.sector++
		r.rest = r.buf
	}

	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}

// driveWriter writes a byte stream to a drive as whole sectors.
type driveWriter struct {
	drive      *drive.Drive
	sectorSize int
	sector     uint32
	pending    []byte
}

// Write implements io.Writer.Write
func (w *driveWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for len(w.pending) >= w.sectorSize {
		if err := w.drive.Write(w.sector, w.pending[:w.sectorSize]); err != nil {
			return 0, errors.Wrapf(err, "couldn't write sector %d", w.sector)
		}
		w.sector++
		w.pending = w.pending[w.sectorSize:]
	}

	return len(p), nil
}

// flush zero-pads and writes a trailing partial sector, if any.
func (w *driveWriter) flush() error {
	if len(w.pending) == 0 {
		return nil
	}

	padded := make([]byte, w.sectorSize)
	copy(padded, w.pending)
	w.pending = nil

	if err := w.drive.Write(w.sector, padded); err != nil {
		return errors.Wrapf(err, "couldn't write sector %d", w.sector)
	}
	w.sector++
	return nil
}
