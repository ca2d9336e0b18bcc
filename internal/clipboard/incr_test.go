package clipboard

import (
	"bytes"
	"testing"
)

func TestChunkLimit(t *testing.T) {
	tests := []struct {
		max  uint16
		want int
	}{
		{65535, maxIncrChunk},
		{4096, 4096*4 - 64},
		{10, 1024},
	}
	for _, tt := range tests {
		if got := chunkLimit(tt.max); got != tt.want {
			t.Errorf("chunkLimit(%d) = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestIncrTransferChunks(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3}, 7)
	tr := &incrTransfer{data: data}

	var got []byte
	var sizes []int
	for {
		chunk, ok := tr.next(8)
		if !ok {
			break
		}
		sizes = append(sizes, len(chunk))
		got = append(got, chunk...)
		if len(sizes) > 10 {
			t.Fatalf("transfer did not finish")
		}
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("reassembled %v, want %v", got, data)
	}
	want := []int{8, 8, 5, 0}
	if len(sizes) != len(want) {
		t.Fatalf("chunk sizes %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("chunk sizes %v, want %v", sizes, want)
		}
	}
	if _, ok := tr.next(8); ok {
		t.Fatalf("finished transfer returned another chunk")
	}
}
