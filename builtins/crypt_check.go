package builtins

import (
	"errors"
	"fmt"

	"github.com/sergeymakinen/go-crypt"

	// Register the hash schemes Check can verify.
	_ "github.com/sergeymakinen/go-crypt/bcrypt"
	_ "github.com/sergeymakinen/go-crypt/md5"
	_ "github.com/sergeymakinen/go-crypt/sha256"
	_ "github.com/sergeymakinen/go-crypt/sha512"

	"wisp/types"
)

// cryptoCryptCheck verifies a password against a crypt-format hash without
// needing the platform crypt(3); the verifier is pure Go and recognizes the
// hash scheme from its prefix.
// cryptcheck(hash, password) -> int
func cryptoCryptCheck(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("cryptcheck takes 2 arguments (%d given)", len(args))
	}
	hashed, err := asStr("cryptcheck", args[0])
	if err != nil {
		return nil, err
	}
	password, err := asStr("cryptcheck", args[1])
	if err != nil {
		return nil, err
	}
	if err := crypt.Check(hashed, password); err != nil {
		if errors.Is(err, crypt.ErrPasswordMismatch) {
			return types.NewInt(0), nil
		}
		return nil, fmt.Errorf("cryptcheck: %v", err)
	}
	return types.NewInt(1), nil
}
