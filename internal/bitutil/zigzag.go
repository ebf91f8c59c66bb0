package bitutil

// FoldZigZag maps a signed integer to its zig-zag encoded unsigned
// counterpart: 0, -1, 1, -2, 2, ... becomes 0, 1, 2, 3, 4, ...
func FoldZigZag(x int32) uint64 {
	return uint64(uint32((x << 1) ^ (x >> 31)))
}

// UnfoldZigZag reverses FoldZigZag: an odd u folds to a negative value, an
// even u folds to a non-negative one.
func UnfoldZigZag(u uint64) int64 {
	if u&1 != 0 {
		return -int64(u>>1) - 1
	}
	return int64(u >> 1)
}
