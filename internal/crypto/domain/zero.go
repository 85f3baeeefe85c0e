package domain

// Zero wipes key material, plaintext or digests once the caller is done with them.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
