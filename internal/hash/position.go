package hash

// Position hashes a chunk coordinate.
//
// x and y are packed into one 64-bit key and mixed with the murmur3 fmix64
// finalizer; z is folded in with a second round. Mixing the axes one after
// another keeps neighbouring coordinates from cancelling out, so the low bits
// are usable as a table index.
func Position(x, y, z int32) uint32 {
	h := fmix64(uint64(uint32(x)) | uint64(uint32(y))<<32)
	h = fmix64(h ^ uint64(uint32(z))*0x9e3779b97f4a7c15)
	return uint32(h ^ h>>32)
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}
