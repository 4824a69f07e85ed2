//go:build !linux

package builtins

import "fmt"

func cryptPlatform(password, salt string) (string, error) {
	return "", fmt.Errorf("crypt is not supported on this platform")
}
