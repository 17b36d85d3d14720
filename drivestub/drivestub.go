/*Package drivestub provides an in-memory sockdrive server
for testing clients without a live service.

The stub speaks the native wire protocol over real TCP sockets:
READ requests are answered with a length-prefixed block payload
(optionally LZ4 block compressed), WRITE requests are stored and,
like the real server, never acknowledged. Sectors that were never
written read back as zeroes.

The stub records a transcript of every request it receives,
and can inject transport faults for failure-path tests.
*/
package drivestub

import (
	"encoding/binary"
	"io"
	"net"
	"sync"

	lz4 "github.com/pierrec/lz4/v4"
)

// NewServer starts a stub server on a random local port.
func NewServer(sectorSize uint32) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	server := &Server{
		listener:   listener,
		sectorSize: sectorSize,
		sectors:    make(map[uint32][]byte),
	}

	go server.serve()
	return server, nil
}

// Server is an in-memory sockdrive server.
type Server struct {
	listener   net.Listener
	sectorSize uint32

	mux             sync.Mutex // protects everything below
	sectors         map[uint32][]byte
	transcript      [][]byte
	reads           int
	writes          int
	compress        bool
	dropAfterLength bool
}

// Address returns the host:port the stub listens on.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// SetSector defines the content of a sector.
// Short data is zero-padded to the sector size.
func (s *Server) SetSector(sector uint32, data []byte) {
	owned := make([]byte, s.sectorSize)
	copy(owned, data)

	s.mux.Lock()
	s.sectors[sector] = owned
	s.mux.Unlock()
}

// Sector returns a copy of a sector's content,
// nil if the sector was never set or written.
func (s *Server) Sector(sector uint32) []byte {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, ok := s.sectors[sector]
	if !ok {
		return nil
	}

	owned := make([]byte, len(data))
	copy(owned, data)
	return owned
}

// SetCompress makes the stub LZ4-compress READ payloads
// when compression actually shrinks them.
func (s *Server) SetCompress(compress bool) {
	s.mux.Lock()
	s.compress = compress
	s.mux.Unlock()
}

// SetDropAfterLength makes the stub close the connection right
// after sending a READ response's length prefix, so clients
// observe a short payload recv.
func (s *Server) SetDropAfterLength(drop bool) {
	s.mux.Lock()
	s.dropAfterLength = drop
	s.mux.Unlock()
}

// ReadRequests returns how many READ requests were served.
func (s *Server) ReadRequests() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.reads
}

// WriteRequests returns how many WRITE requests were received.
func (s *Server) WriteRequests() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.writes
}

// Transcript returns the raw bytes of every request received,
// one slice per protocol command, in arrival order.
func (s *Server) Transcript() [][]byte {
	s.mux.Lock()
	defer s.mux.Unlock()

	transcript := make([][]byte, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}

// Close stops the stub and drops its connections.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	header := make([]byte, 5)
	for {
		if _, err := io.ReadFull(conn, header[:1]); err != nil {
			return
		}

		switch header[0] {
		case 1:
			if _, err := io.ReadFull(conn, header[1:5]); err != nil {
				return
			}
			ahead := make([]byte, 1)
			if _, err := io.ReadFull(conn, ahead); err != nil {
				return
			}
			origin := binary.LittleEndian.Uint32(header[1:5])
			s.record(append(append([]byte{}, header[:5]...), ahead[0]))
			if !s.serveRead(conn, origin, ahead[0]) {
				return
			}

		case 2:
			if _, err := io.ReadFull(conn, header[1:5]); err != nil {
				return
			}
			payload := make([]byte, s.sectorSize)
			if _, err := io.ReadFull(conn, payload); err != nil {
				return
			}
			sector := binary.LittleEndian.Uint32(header[1:5])
			s.record(append(append([]byte{}, header[:5]...), payload...))

			s.mux.Lock()
			s.writes++
			s.sectors[sector] = payload
			s.mux.Unlock()

		default:
			return
		}
	}
}

func (s *Server) serveRead(conn net.Conn, origin uint32, ahead uint8) bool {
	block := make([]byte, uint32(ahead)*s.sectorSize)

	s.mux.Lock()
	s.reads++
	for i := uint32(0); i < uint32(ahead); i++ {
		if data, ok := s.sectors[origin+i]; ok {
			copy(block[i*s.sectorSize:], data)
		}
	}
	compress := s.compress
	drop := s.dropAfterLength
	s.mux.Unlock()

	payload := block
	if compress {
		compressed := make([]byte, lz4.CompressBlockBound(len(block)))
		var compressor lz4.Compressor
		n, err := compressor.CompressBlock(block, compressed)
		if err == nil && n > 0 && n < len(block) {
			payload = compressed[:n]
		}
	}

	prefix := make([]byte, 4)
	binary.LittleEndian.PutUint32(prefix, uint32(len(payload)))
	if _, err := conn.Write(prefix); err != nil {
		return false
	}

	if drop {
		conn.Close()
		return false
	}

	_, err := conn.Write(payload)
	return err == nil
}

func (s *Server) record(request []byte) {
	s.mux.Lock()
	s.transcript = append(s.transcript, request)
	s.mux.Unlock()
}
