package common

// WipeByteArray overwrites b with zeros. Used for tokens read from the
// terminal once they have been copied into the session.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
