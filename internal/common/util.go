package common

// WipeByteArray overwrites b with zeros. Safe to call with nil.
// Used to clear password buffers once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
