package codec

// None stores data uncompressed.
type None struct{}

// MaxCompressedSize returns uncompressedSize.
func (None) MaxCompressedSize(uncompressedSize int) int { return uncompressedSize }

// Compress copies src into dst.
func (None) Compress(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, ErrBufferTooSmall
	}
	return copy(dst, src), nil
}

// Decompress copies src into dst.
func (None) Decompress(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, ErrBufferTooSmall
	}
	return copy(dst, src), nil
}

// Name returns "none".
func (None) Name() string { return "none" }
