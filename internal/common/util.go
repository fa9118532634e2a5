// Package common contains small utilities shared across EasyFlow components.
package common

// WipeByteArray overwrites buf with zeros. Use it to scrub passwords from
// memory once they have been handed off.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
