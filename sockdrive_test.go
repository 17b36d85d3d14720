package sockdrive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/drive"
	"github.com/caiiiycuk/sockdrive/drivestub"
)

func TestOpenFailure(t *testing.T) {
	// nothing listens on the discard port
	handle := Open("127.0.0.1:9", "owner", "name", "token")
	assert.Equal(t, InvalidHandle, handle)
}

func TestInvalidHandleOperations(t *testing.T) {
	buf := make([]byte, config.DefaultSectorSize)

	assert.Equal(t, drive.StatusInvalidHandle, Read(InvalidHandle, 0, buf))
	assert.Equal(t, drive.StatusInvalidHandle, Write(InvalidHandle, 0, buf))

	// closing an unknown handle is a no-op
	Close(Handle(42))
}

func TestDefaultGeometryAccessors(t *testing.T) {
	// unknown handles report the stock template
	assert.Equal(t, uint32(2097152), Size(InvalidHandle))
	assert.Equal(t, uint32(128), Heads(InvalidHandle))
	assert.Equal(t, uint32(63), Sectors(InvalidHandle))
	assert.Equal(t, uint32(520), Cylinders(InvalidHandle))
	assert.Equal(t, uint32(512), SectorSize(InvalidHandle))
}

func TestOpenReadWriteClose(t *testing.T) {
	server, err := drivestub.NewServer(config.DefaultSectorSize)
	require.NoError(t, err)
	defer server.Close()

	content := make([]byte, config.DefaultSectorSize)
	copy(content, "sockdrive facade test sector")
	server.SetSector(3, content)

	handle := Open(server.Address(), "owner", "name", "token")
	require.NotEqual(t, InvalidHandle, handle)
	defer Close(handle)

	assert.Equal(t, uint32(2097152), Size(handle))
	assert.Equal(t, uint32(512), SectorSize(handle))

	buf := make([]byte, config.DefaultSectorSize)
	require.Equal(t, drive.StatusOK, Read(handle, 3, buf))
	assert.Equal(t, content, buf)

	copy(buf, "rewritten")
	require.Equal(t, drive.StatusOK, Write(handle, 3, buf))

	// served from the patched cache
	check := make([]byte, config.DefaultSectorSize)
	require.Equal(t, drive.StatusOK, Read(handle, 3, check))
	assert.Equal(t, buf, check)
	assert.Equal(t, 1, server.ReadRequests())
}

func TestHandlesAreUniqueAndIsolated(t *testing.T) {
	server, err := drivestub.NewServer(config.DefaultSectorSize)
	require.NoError(t, err)
	defer server.Close()

	first := Open(server.Address(), "owner", "a", "")
	second := Open(server.Address(), "owner", "b", "")
	require.NotEqual(t, InvalidHandle, first)
	require.NotEqual(t, InvalidHandle, second)
	assert.NotEqual(t, first, second)

	Close(first)

	// the surviving handle keeps working
	buf := make([]byte, config.DefaultSectorSize)
	assert.Equal(t, drive.StatusOK, Read(second, 0, buf))

	// the closed one doesn't
	assert.Equal(t, drive.StatusInvalidHandle, Read(first, 0, buf))
	Close(second)
}
