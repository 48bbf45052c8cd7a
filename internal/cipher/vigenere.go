// Package cipher implements the byte-wise extended Vigenère cipher used to
// optionally encrypt the payload before framing.
package cipher

import "mp3stego/internal/stegoerr"

// Vigenere is a UTF-8-keyed byte-wise Vigenère cipher: ciphertext[i] =
// (plaintext[i] + key[i mod len(key)]) mod 256.
type Vigenere struct {
	key []byte
}

// New builds a cipher from a UTF-8 key. The key must be validated with
// ValidateKey by the caller before use; New itself does not reject an empty
// key so that Encrypt/Decrypt remain total functions over their inputs.
func New(key string) *Vigenere {
	return &Vigenere{key: []byte(key)}
}

// Encrypt returns a new slice; it never mutates plaintext.
func (v *Vigenere) Encrypt(plaintext []byte) []byte {
	if len(v.key) == 0 {
		out := make([]byte, len(plaintext))
		copy(out, plaintext)
		return out
	}
	out := make([]byte, len(plaintext))
	keyLen := len(v.key)
	for i, b := range plaintext {
		out[i] = byte((int(b) + int(v.key[i%keyLen])) % 256)
	}
	return out
}

// Decrypt inverts Encrypt.
func (v *Vigenere) Decrypt(ciphertext []byte) []byte {
	if len(v.key) == 0 {
		out := make([]byte, len(ciphertext))
		copy(out, ciphertext)
		return out
	}
	out := make([]byte, len(ciphertext))
	keyLen := len(v.key)
	for i, b := range ciphertext {
		out[i] = byte((int(b) - int(v.key[i%keyLen]) + 256) % 256)
	}
	return out
}

// ValidateKey rejects keys that cannot back a cipher or random-position
// offset: the spec requires a non-empty key whenever either feature is used.
func ValidateKey(key string) error {
	if len(key) == 0 {
		return stegoerr.ErrMissingKey
	}
	return nil
}
