// Package secure holds helpers for handling secret material: wiping buffers,
// comparing without timing leaks, and drawing randomness.
package secure

import (
	"crypto/subtle"
	"runtime"
)

func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}
