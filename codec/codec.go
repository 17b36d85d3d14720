/*Package codec unpacks the LZ4 block payloads of sockdrive READ responses.
A payload whose length equals the expected decoded length is raw
and is passed through without touching the LZ4 decoder.
*/
package codec

import (
	lz4 "github.com/pierrec/lz4/v4"

	"github.com/caiiiycuk/sockdrive/errors"
)

const (
	// CompressedScratchSize bounds the compressed payload of one block,
	// sized for the worst case of a 255 sector ahead range.
	CompressedScratchSize = 128 * 1024

	// TooLargeResult is returned when a payload exceeds the scratch buffer.
	TooLargeResult = -1
	// CorruptResult is returned when a payload doesn't decode
	// to exactly the expected size.
	CorruptResult = -2
)

// Errors returned by BlockCodec.DecompressBlock.
var (
	ErrPayloadTooLarge = errors.New("compressed payload exceeds scratch buffer")
	ErrPayloadCorrupt  = errors.New("payload doesn't decode to the expected size")
)

// NewBlockCodec creates a block codec with its own scratch buffer.
// One codec serves one drive, it is not safe for concurrent use.
func NewBlockCodec() *BlockCodec {
	return &BlockCodec{
		compressed: make([]byte, CompressedScratchSize),
	}
}

// BlockCodec decompresses block payloads using a private
// bounded scratch buffer for the compressed input,
// so that payloads can be decoded in place over the buffer
// they were received into.
type BlockCodec struct {
	compressed []byte
}

// Scratch returns a prefix of the codec's private scratch buffer
// to receive an n-byte compressed payload into.
// It fails with ErrPayloadTooLarge when n exceeds the scratch capacity.
func (c *BlockCodec) Scratch(n int) ([]byte, error) {
	if n > len(c.compressed) {
		return nil, errors.Wrapf(ErrPayloadTooLarge,
			"%d bytes don't fit in %d bytes of scratch", n, len(c.compressed))
	}

	return c.compressed[:n], nil
}

// DecompressBlock fills dst with the decoded content of payload.
// payload may alias dst or the codec's own scratch buffer.
//
// The returned count mirrors the classic LZ4 block decoder:
// the decoded size on success, TooLargeResult or CorruptResult on failure.
func (c *BlockCodec) DecompressBlock(payload, dst []byte) (int, error) {
	if len(payload) == len(dst) {
		// raw payload, no decompression on the wire
		if len(payload) > 0 && &payload[0] != &dst[0] {
			copy(dst, payload)
		}
		return len(dst), nil
	}

	if len(payload) > len(c.compressed) {
		return TooLargeResult, ErrPayloadTooLarge
	}

	// payload regularly is the scratch itself, copy is a no-op then
	n := copy(c.compressed, payload)
	decoded, err := lz4.UncompressBlock(c.compressed[:n], dst)
	if err != nil {
		return CorruptResult, errors.Wrap(ErrPayloadCorrupt, err.Error())
	}
	if decoded != len(dst) {
		return CorruptResult, errors.Wrapf(ErrPayloadCorrupt,
			"decoded %d bytes, expected %d", decoded, len(dst))
	}

	return decoded, nil
}
