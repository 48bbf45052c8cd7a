package codec

import (
	"mp3stego/internal/framer"
	"mp3stego/internal/mp3scan"
	"mp3stego/internal/stegoerr"
)

// Embed carries out the C6 embedder procedure: validate parameters, encrypt
// the payload if requested, frame it with start/end signatures, locate a
// starting offset (fixed or key-derived), and write the framed bit sequence
// into the cover's usable positions. It returns a new byte slice; the input
// cover is never mutated in place.
func Embed(cover []byte, filename string, payload []byte, cfg EmbedConfig) ([]byte, error) {
	if err := validateK(cfg.K); err != nil {
		return nil, err
	}
	if (cfg.Encrypt || cfg.RandomPosition) && cfg.Key == "" {
		return nil, stegoerr.ErrMissingKey
	}
	if !mp3scan.LooksLikeMp3(cover) {
		return nil, stegoerr.ErrNotAnMp3
	}

	usable := mp3scan.UsablePositions(cover)

	body := encryptIfEnabled(payload, cfg.Encrypt, cfg.Key)

	bits, err := framer.Assemble(cfg.K, filename, body)
	if err != nil {
		return nil, err
	}

	need := len(bits)
	have := cfg.K * len(usable)
	if need > have {
		return nil, stegoerr.NewInsufficientCapacity(need, have)
	}

	out := make([]byte, len(cover))
	copy(out, cover)

	offset := startOffset(cfg.Key, cfg.RandomPosition, len(usable))
	writeBits(out, usable, cfg.K, offset, bits)

	return out, nil
}
