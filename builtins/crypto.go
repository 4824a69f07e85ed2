package builtins

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/ripemd160"

	"wisp/types"
)

func cryptoModule() *types.ModuleValue {
	return types.NewModule("crypto", map[string]types.Value{
		"hash":          fn("hash", cryptoHash),
		"encode_base64": fn("encode_base64", cryptoEncodeBase64),
		"decode_base64": fn("decode_base64", cryptoDecodeBase64),
		"crypt":         fn("crypt", cryptoCrypt),
		"cryptcheck":    fn("cryptcheck", cryptoCryptCheck),
	})
}

// cryptoHash digests a string with a named algorithm, hex-encoded
// hash(algo, str) -> str
func cryptoHash(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("hash takes 2 arguments (%d given)", len(args))
	}
	algo, err := asStr("hash", args[0])
	if err != nil {
		return nil, err
	}
	data, err := asStr("hash", args[1])
	if err != nil {
		return nil, err
	}

	var h hash.Hash
	switch algo {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	case "ripemd160":
		h = ripemd160.New()
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algo)
	}
	h.Write([]byte(data))
	return types.NewStr(hex.EncodeToString(h.Sum(nil))), nil
}

// cryptoEncodeBase64 encodes a string to standard base64
// encode_base64(str) -> str
func cryptoEncodeBase64(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("encode_base64 takes 1 argument (%d given)", len(args))
	}
	s, err := asStr("encode_base64", args[0])
	if err != nil {
		return nil, err
	}
	return types.NewStr(base64.StdEncoding.EncodeToString([]byte(s))), nil
}

// cryptoDecodeBase64 decodes a standard base64 string
// decode_base64(str) -> str
func cryptoDecodeBase64(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("decode_base64 takes 1 argument (%d given)", len(args))
	}
	s, err := asStr("decode_base64", args[0])
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode_base64: %v", err)
	}
	return types.NewStr(string(decoded)), nil
}

// cryptoCrypt hashes a password with the platform crypt(3)
// crypt(password, salt) -> str
func cryptoCrypt(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("crypt takes 2 arguments (%d given)", len(args))
	}
	password, err := asStr("crypt", args[0])
	if err != nil {
		return nil, err
	}
	salt, err := asStr("crypt", args[1])
	if err != nil {
		return nil, err
	}
	hashed, err := cryptPlatform(password, salt)
	if err != nil {
		return nil, err
	}
	return types.NewStr(hashed), nil
}
