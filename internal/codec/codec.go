// Package codec orchestrates the embedder (C6) and extractor (C7): it wires
// the scanner, framer, cipher, and position packages together into the two
// public operations the CLI exposes.
package codec

import (
	"mp3stego/internal/cipher"
	"mp3stego/internal/mp3scan"
	"mp3stego/internal/position"
	"mp3stego/internal/stegoerr"
)

// EmbedConfig configures one embed operation.
type EmbedConfig struct {
	K              int
	Encrypt        bool
	Key            string
	RandomPosition bool
}

// ExtractConfig configures one extract operation. K is not part of it: the
// extractor auto-detects the LSB width from the start signature.
type ExtractConfig struct {
	Encrypted      bool
	Key            string
	RandomPosition bool
}

func validateK(k int) error {
	if k < 1 || k > 4 {
		return stegoerr.ErrInvalidParameter
	}
	return nil
}

// Capacity reports the usable-position count and the total bit capacity
// (k * usable) for a cover file at a given LSB width, without embedding
// anything. It backs the CLI's --dry-run reporting; Embed computes the same
// k * usable figure itself for its up-front validation.
func Capacity(coverData []byte, k int) (usable int, bitCapacity int, err error) {
	if err := validateK(k); err != nil {
		return 0, 0, err
	}
	positions := mp3scan.UsablePositions(coverData)
	return len(positions), len(positions) * k, nil
}

func startOffset(key string, randomPosition bool, usableCount int) int {
	if !randomPosition {
		return 0
	}
	return position.Generate(key, usableCount)
}

func encryptIfEnabled(data []byte, enable bool, key string) []byte {
	if !enable {
		return data
	}
	return cipher.New(key).Encrypt(data)
}

func decryptIfEnabled(data []byte, enable bool, key string) []byte {
	if !enable {
		return data
	}
	return cipher.New(key).Decrypt(data)
}
