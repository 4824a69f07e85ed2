//go:build linux

package builtins

import "github.com/amoghe/go-crypt"

// cryptPlatform hashes with the system crypt(3), matching whatever salt
// prefixes the host libc supports.
func cryptPlatform(password, salt string) (string, error) {
	return crypt.Crypt(password, salt)
}
