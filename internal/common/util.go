package common

// WipeBytes overwrites the contents of the provided byte slice with zeros.
// Useful for removing plaintext passwords from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
