/*Package frame turns the partial reads and writes of a byte stream
into total operations, as the sockdrive wire protocol requires.
All integer fields on the wire are little-endian.
*/
package frame

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/caiiiycuk/sockdrive/errors"
)

// zeroReadDelay is slept when a stream returns zero bytes without error,
// so a non-blocking transport doesn't turn RecvAll into a busy-wait.
const zeroReadDelay = 100 * time.Microsecond

// SendAll writes all of p to w,
// or fails with the first error the stream reports.
func SendAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return errors.Wrap(err, "stream send failed")
		}
		if n == 0 {
			time.Sleep(zeroReadDelay)
			continue
		}
		p = p[n:]
	}

	return nil
}

// RecvAll fills p completely from r,
// retrying short reads until the byte count is satisfied.
// A stream error or EOF before p is full fails the receive.
func RecvAll(r io.Reader, p []byte) error {
	read := 0
	for read < len(p) {
		n, err := r.Read(p[read:])
		read += n
		if read >= len(p) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "stream recv failed")
		}
		if n == 0 {
			time.Sleep(zeroReadDelay)
		}
	}

	return nil
}

// RecvUint32 receives a little-endian uint32 from r.
func RecvUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := RecvAll(r, buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// SendUint32 sends v to w as a little-endian uint32.
func SendUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return SendAll(w, buf[:])
}

// PutUint32 stores v in b as a little-endian uint32.
// b must hold at least 4 bytes.
func PutUint32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// Uint32 reconstructs a little-endian uint32 from the first 4 bytes of b.
func Uint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
