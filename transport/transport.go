/*Package transport dials the byte pipe a drive speaks its protocol over.

Two transports are supported: a plain TCP connection (the native deployment)
and a WebSocket connection (the browser-facing sockdrive service).
Both are exposed as an ordered, reliable byte stream; the drive engine
on top never knows which one it got.
*/
package transport

import (
	"io"
	"net"
	"strings"

	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/errors"
)

// DefaultTCPPort is dialed when a plain endpoint doesn't carry a port.
const DefaultTCPPort = "8001"

// Conn is an ordered, reliable byte pipe to a sockdrive server.
type Conn interface {
	io.Reader
	io.Writer
	Close() error
}

// Info carries what a server announces about a drive during the
// WebSocket handshake. Plain TCP servers announce nothing.
type Info struct {
	// ReadOnly is set when the server grants no write access.
	ReadOnly bool
	// AheadRange is the prefetch width the server serves blocks in.
	AheadRange uint8
	// SizeKiB is the size of the drive image in KiB,
	// zero when the server didn't report it.
	SizeKiB uint32
}

// Dial connects to a sockdrive endpoint.
//
// Endpoints starting with ws:// or wss:// are dialed as WebSocket
// connections and perform the service handshake using the given
// credentials; the returned Info is then non-nil.
// Any other endpoint is dialed as a plain TCP connection
// (appending the default port when none is given) and the
// credentials stay unused, as the native protocol has no handshake.
func Dial(endpoint string, creds config.Credentials) (Conn, *Info, error) {
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		return DialWebSocket(endpoint, creds)
	}

	conn, err := DialTCP(endpoint)
	if err != nil {
		return nil, nil, err
	}
	return conn, nil, nil
}

// DialTCP connects to a native sockdrive server over TCP.
func DialTCP(address string) (Conn, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, DefaultTCPPort)
	}

	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't dial sockdrive server %s", address)
	}

	return conn, nil
}
