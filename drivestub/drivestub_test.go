package drivestub

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubServesRawProtocol(t *testing.T) {
	server, err := NewServer(8)
	require.NoError(t, err)
	defer server.Close()

	server.SetSector(1, []byte("BBBBBBBB"))

	conn, err := net.Dial("tcp", server.Address())
	require.NoError(t, err)
	defer conn.Close()

	// READ block at origin 0, two sectors ahead
	_, err = conn.Write([]byte{1, 0, 0, 0, 0, 2})
	require.NoError(t, err)

	prefix := make([]byte, 4)
	_, err = io.ReadFull(conn, prefix)
	require.NoError(t, err)
	length := binary.LittleEndian.Uint32(prefix)
	assert.Equal(t, uint32(16), length, "uncompressed replies are raw")

	payload := make([]byte, length)
	_, err = io.ReadFull(conn, payload)
	require.NoError(t, err)
	assert.Equal(t, append(make([]byte, 8), []byte("BBBBBBBB")...), payload,
		"unset sectors read back as zeroes")

	// WRITE sector 3, no acknowledgement follows
	request := append([]byte{2, 3, 0, 0, 0}, []byte("XXXXXXXX")...)
	_, err = conn.Write(request)
	require.NoError(t, err)

	// a follow-up read observes the write, the stream is ordered
	_, err = conn.Write([]byte{1, 2, 0, 0, 0, 2})
	require.NoError(t, err)
	_, err = io.ReadFull(conn, prefix)
	require.NoError(t, err)
	payload = make([]byte, binary.LittleEndian.Uint32(prefix))
	_, err = io.ReadFull(conn, payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("XXXXXXXX"), payload[8:])

	assert.Equal(t, 2, server.ReadRequests())
	assert.Equal(t, 1, server.WriteRequests())
	assert.Equal(t, []byte("XXXXXXXX"), server.Sector(3))
	assert.Len(t, server.Transcript(), 3)
}

func TestStubUnknownCommandDropsConnection(t *testing.T) {
	server, err := NewServer(8)
	require.NoError(t, err)
	defer server.Close()

	conn, err := net.Dial("tcp", server.Address())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte{99})
	require.NoError(t, err)

	buf := make([]byte, 1)
	_, err = io.ReadFull(conn, buf)
	assert.Error(t, err, "the stub hangs up on protocol garbage")
}
