package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Known answer from RFC 3720 (iSCSI), 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))

	h := NewCRC32C()
	_, _ = h.Write([]byte("vox"))
	_, _ = h.Write([]byte("els"))
	assert.Equal(t, CRC32C([]byte("voxels")), h.Sum32())
}

func TestPosition_SpreadsNeighbours(t *testing.T) {
	const mask = 1<<12 - 1
	seen := make(map[uint32]int)
	for x := int32(-8); x < 8; x++ {
		for y := int32(-8); y < 8; y++ {
			for z := int32(-8); z < 8; z++ {
				seen[Position(x, y, z)&mask]++
			}
		}
	}
	// 4096 coordinates into 4096 slots: a decent hash fills well over half.
	assert.Greater(t, len(seen), 2048)
	assert.Equal(t, Position(3, -4, 5), Position(3, -4, 5))
}
