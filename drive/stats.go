package drive

import "time"

// Stats counts what a drive did since it was opened.
type Stats struct {
	// CacheHits counts reads served from the block cache.
	CacheHits uint64
	// CacheMisses counts reads that went to the server.
	CacheMisses uint64
	// PayloadBytes sums the compressed payload bytes received.
	PayloadBytes uint64
	// BytesWritten sums the sector bytes sent by writes.
	BytesWritten uint64
	// ReadTime sums the wall time spent in network reads.
	ReadTime time.Duration
}
