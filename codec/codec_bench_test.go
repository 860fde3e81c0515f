package codec

import (
	"testing"

	"github.com/hupe1980/voxgo/testutil"
)

func benchmarkCompress(b *testing.B, c Compressor, src []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))

	dst := make([]byte, c.MaxCompressedSize(len(src)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Compress(dst, src); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecompress(b *testing.B, c Compressor, src []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))

	compressed := MustCompress(c, src)
	out := make([]byte, len(src))
	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Decompress(out, compressed); err != nil {
			b.Fatal(err)
		}
	}
}

func terrainChunk() []byte {
	buf := make([]byte, 32*32*32)
	testutil.NewRNG(42).FillRuns(buf, 4, 512)
	return buf
}

func BenchmarkCompress_LZ4(b *testing.B)     { benchmarkCompress(b, NewLZ4(), terrainChunk()) }
func BenchmarkCompress_Zstd(b *testing.B)    { benchmarkCompress(b, NewZstd(ZstdDefault), terrainChunk()) }
func BenchmarkCompress_Deflate(b *testing.B) { benchmarkCompress(b, NewDeflate(DeflateDefault), terrainChunk()) }
func BenchmarkCompress_RLE(b *testing.B)     { benchmarkCompress(b, NewRLE(1), terrainChunk()) }

func BenchmarkDecompress_LZ4(b *testing.B)  { benchmarkDecompress(b, NewLZ4(), terrainChunk()) }
func BenchmarkDecompress_Zstd(b *testing.B) { benchmarkDecompress(b, NewZstd(ZstdDefault), terrainChunk()) }
func BenchmarkDecompress_Deflate(b *testing.B) {
	benchmarkDecompress(b, NewDeflate(DeflateDefault), terrainChunk())
}
func BenchmarkDecompress_RLE(b *testing.B) { benchmarkDecompress(b, NewRLE(1), terrainChunk()) }
