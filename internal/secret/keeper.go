// Package secret seals vendor API tokens before they are written to the
// flat-file user store.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// Keeper derives one AES-256 key from the configured secret on first use
// and reuses it for the life of the process. Concurrent first use must not
// derive the key twice, hence the once cell.
type Keeper struct {
	secret string

	once sync.Once
	aead cipher.AEAD
	err  error
}

func NewKeeper(secret string) *Keeper {
	return &Keeper{secret: secret}
}

func (k *Keeper) gcm() (cipher.AEAD, error) {
	k.once.Do(func() {
		key := sha256.Sum256([]byte(k.secret))
		block, err := aes.NewCipher(key[:])
		if err != nil {
			k.err = err
			return
		}
		k.aead, k.err = cipher.NewGCM(block)
	})
	return k.aead, k.err
}

// Seal encrypts a token for storage. With no secret configured the token is
// stored as-is (dev mode).
func (k *Keeper) Seal(plain string) (string, error) {
	if k.secret == "" || plain == "" {
		return plain, nil
	}
	aead, err := k.gcm()
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a stored token. Values that were written before a secret
// was configured come back unchanged.
func (k *Keeper) Open(stored string) (string, error) {
	if k.secret == "" || stored == "" {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		// Legacy plaintext value.
		return stored, nil
	}
	aead, err := k.gcm()
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return stored, nil
	}
	plain, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], nil)
	if err != nil {
		return stored, nil
	}
	return string(plain), nil
}
