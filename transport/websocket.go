package transport

import (
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/errors"
)

// DialWebSocket connects to the sockdrive service over a WebSocket.
//
// The first frame sent is the text handshake `owner&name&token`;
// the server answers with `mode,aheadRange,sizeKiB` where mode is
// either "read" or "write". Any other reply is an authorization or
// routing error and fails the dial.
func DialWebSocket(endpoint string, creds config.Credentials) (Conn, *Info, error) {
	ws, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "couldn't dial sockdrive service %s", endpoint)
	}

	err = ws.WriteMessage(websocket.TextMessage, []byte(creds.Handshake()))
	if err != nil {
		ws.Close()
		return nil, nil, errors.Wrap(err, "couldn't send sockdrive handshake")
	}

	_, reply, err := ws.ReadMessage()
	if err != nil {
		ws.Close()
		return nil, nil, errors.Wrap(err, "couldn't receive sockdrive handshake reply")
	}

	info, err := ParseInfo(string(reply))
	if err != nil {
		ws.Close()
		return nil, nil, err
	}

	return &wsConn{ws: ws, sectorSize: config.DefaultSectorSize}, info, nil
}

// ParseInfo parses the server's `mode,aheadRange,sizeKiB` handshake reply.
func ParseInfo(reply string) (*Info, error) {
	parts := strings.Split(reply, ",")
	if len(parts) < 2 || (parts[0] != "read" && parts[0] != "write") {
		return nil, errors.Newf("sockdrive handshake rejected: %s", reply)
	}

	aheadRange, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || aheadRange == 0 {
		return nil, errors.Newf("sockdrive handshake carries invalid ahead range %q", parts[1])
	}

	info := &Info{
		ReadOnly:   parts[0] != "write",
		AheadRange: uint8(aheadRange),
	}

	if len(parts) > 2 {
		sizeKiB, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			return nil, errors.Newf("sockdrive handshake carries invalid size %q", parts[2])
		}
		info.SizeKiB = uint32(sizeKiB)
	}

	return info, nil
}

// wsConn exposes a WebSocket as a byte stream.
// The sockdrive service expects one binary message per protocol command,
// so written bytes are gathered until they form a complete READ or WRITE
// request; received binary messages are drained across Read calls.
type wsConn struct {
	ws         *websocket.Conn
	sectorSize uint32
	buffered   []byte
	pending    []byte
}

// Read implements Conn.Read
func (c *wsConn) Read(p []byte) (int, error) {
	for len(c.buffered) == 0 {
		kind, message, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		if kind != websocket.BinaryMessage {
			// control/text frames are not part of the drive protocol
			continue
		}
		c.buffered = message
	}

	n := copy(p, c.buffered)
	c.buffered = c.buffered[n:]
	return n, nil
}

// Write implements Conn.Write
func (c *wsConn) Write(p []byte) (int, error) {
	c.pending = append(c.pending, p...)
	for len(c.pending) > 0 {
		n := c.commandLen()
		if len(c.pending) < n {
			break
		}
		err := c.ws.WriteMessage(websocket.BinaryMessage, c.pending[:n])
		if err != nil {
			return 0, err
		}
		c.pending = c.pending[n:]
	}

	return len(p), nil
}

// commandLen returns the full wire length of the pending command.
// Bytes that don't start a known command are passed through as-is.
func (c *wsConn) commandLen() int {
	switch c.pending[0] {
	case 1: // READ: command, origin, ahead range
		return 1 + 4 + 1
	case 2: // WRITE: command, sector, payload
		return 1 + 4 + int(c.sectorSize)
	default:
		return len(c.pending)
	}
}

// Close implements Conn.Close
func (c *wsConn) Close() error {
	c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}
