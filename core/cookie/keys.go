package cookie

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	signInfo    = "biblio cookie signing v1"
	encryptInfo = "biblio cookie encryption v1"
)

// keyPair holds the signing and encryption keys derived from one secret.
type keyPair struct {
	sign    []byte
	encrypt []byte
}

// deriveKeys expands secret into independent 32-byte keys, so the HMAC and
// AES-GCM never share key material.
func deriveKeys(secret string) (keyPair, error) {
	sign, err := expand(secret, signInfo)
	if err != nil {
		return keyPair{}, err
	}
	enc, err := expand(secret, encryptInfo)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: sign, encrypt: enc}, nil
}

func expand(secret, info string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
