package clipboard

import "github.com/jezek/xgb/xproto"

// maxIncrChunk caps a single INCR property write.
const maxIncrChunk = 256 * 1024

// chunkLimit returns the largest property payload sent in one request for a
// server with the given maximum request length in 4-byte units. Larger data
// goes through the INCR protocol.
func chunkLimit(maxRequestLength uint16) int {
	n := int(maxRequestLength)*4 - 64
	if n > maxIncrChunk {
		n = maxIncrChunk
	}
	if n < 1024 {
		n = 1024
	}
	return n
}

type transferKey struct {
	requestor xproto.Window
	property  xproto.Atom
}

// incrTransfer is one INCR selection transfer in progress.
type incrTransfer struct {
	data   []byte
	offset int
	done   bool
}

// next returns the following chunk of at most size bytes. The empty chunk
// that ends the transfer is returned once, after which ok is false.
func (t *incrTransfer) next(size int) (chunk []byte, ok bool) {
	if t.done {
		return nil, false
	}
	end := min(t.offset+size, len(t.data))
	chunk = t.data[t.offset:end]
	t.offset = end
	if len(chunk) == 0 {
		t.done = true
	}
	return chunk, true
}
