package huffpack

// padTo8 returns the number of zero bits needed to extend a bit count to a
// whole number of bytes.  The result is always in [0, 7].
func padTo8(bits uint64) byte {
	return byte((8 - bits%8) % 8)
}

// bytesFor returns the number of bytes needed to hold the given bit count.
func bytesFor(bits uint64) int {
	return int((bits + 7) / 8)
}
