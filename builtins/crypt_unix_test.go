//go:build linux

package builtins

import (
	"strings"
	"testing"

	"wisp/types"
)

func TestCryptThenCheckRoundTrip(t *testing.T) {
	// crypt goes through the platform crypt(3); cryptcheck verifies the
	// result with the pure-Go implementation. The two must agree.
	hashed := callAttr(t, "crypto", "crypt", types.NewStr("secret"), types.NewStr("$1$ab$"))
	hs := hashed.(types.StrValue).Value()
	if !strings.HasPrefix(hs, "$1$") {
		t.Fatalf("crypt produced %q, want an MD5-crypt hash", hs)
	}

	ok := callAttr(t, "crypto", "cryptcheck", hashed, types.NewStr("secret"))
	if ok.String() != "1" {
		t.Errorf("cryptcheck(own hash) = %s, want 1", ok.String())
	}
	bad := callAttr(t, "crypto", "cryptcheck", hashed, types.NewStr("wrong"))
	if bad.String() != "0" {
		t.Errorf("cryptcheck(wrong password) = %s, want 0", bad.String())
	}
}
