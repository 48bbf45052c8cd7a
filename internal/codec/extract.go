package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"mp3stego/internal/diag"
	"mp3stego/internal/framer"
	"mp3stego/internal/mp3scan"
	"mp3stego/internal/stegoerr"
)

// Extracted is the result of a successful extract operation.
type Extracted struct {
	Filename       string
	Payload        []byte
	K              int
	FilenameWasRaw bool
}

// Extract carries out the C7 extractor procedure: it tries each LSB width
// k in {1,2,3,4} in turn, reading the start signature from the same
// key-derived (or zero) offset. Width detection is an exhaustive check of
// the four defined signature pairs: only a start-signature mismatch (or
// running out of bits before even reading one) advances to the next k. Once
// a start signature matches, the extractor commits to that k — any failure
// reading the rest of the frame (length, filename, payload) is a genuine
// error (TruncatedStream/InvalidLength), not a cue to try another width. An
// end-signature mismatch or filename UTF-8 fallback is reported through ch
// instead of failing the operation.
func Extract(cover []byte, cfg ExtractConfig, ch *diag.Channel) (Extracted, error) {
	if cfg.RandomPosition && cfg.Key == "" {
		return Extracted{}, stegoerr.ErrMissingKey
	}
	if cfg.Encrypted && cfg.Key == "" {
		return Extracted{}, stegoerr.ErrMissingKey
	}
	if !mp3scan.LooksLikeMp3(cover) {
		return Extracted{}, stegoerr.ErrNotAnMp3
	}

	usable := mp3scan.UsablePositions(cover)
	offset := startOffset(cfg.Key, cfg.RandomPosition, len(usable))

	for k := 1; k <= 4; k++ {
		reader := newBitReader(cover, usable, k, offset)
		startBits, ok := reader.ReadBits(framer.SignatureBits)
		if !ok {
			continue
		}
		if !bitsEqualLocal(startBits, framer.StartSignature(k)) {
			continue
		}

		lenAndFnLenBits, ok := reader.ReadBits(8 * 5)
		if !ok {
			return Extracted{}, stegoerr.ErrTruncatedStream
		}

		parsed, err := tryParseBody(reader, lenAndFnLenBits, k)
		if err != nil {
			return Extracted{}, err
		}

		payload := decryptIfEnabled(parsed.Payload, cfg.Encrypted, cfg.Key)

		if !parsed.EndSigOK {
			ch.Warnf("end signature mismatch for k=%d; payload may be truncated or corrupted", k)
		}
		if parsed.FilenameWasRaw {
			ch.Warnf("embedded filename was not valid UTF-8; using extracted_file.bin")
		}

		return Extracted{
			Filename:       parsed.Filename,
			Payload:        payload,
			K:              k,
			FilenameWasRaw: parsed.FilenameWasRaw,
		}, nil
	}

	return Extracted{}, stegoerr.ErrSignatureNotFound
}

// tryParseBody reads the remainder of the framed message (filename, payload,
// end signature) from reader, given the already-read length+filename-length
// bits, and hands the reassembled bit slice to framer.Parse. Once the start
// signature has matched, every failure here is a genuine error: the caller
// does not fall back to trying another k.
func tryParseBody(reader *bitReader, lenAndFnLenBits []byte, k int) (framer.Parsed, error) {
	fnLen := int(packByte(lenAndFnLenBits[32:40]))
	payloadLen := int(packByte(lenAndFnLenBits[24:32]))<<24 |
		int(packByte(lenAndFnLenBits[16:24]))<<16 |
		int(packByte(lenAndFnLenBits[8:16]))<<8 |
		int(packByte(lenAndFnLenBits[0:8]))

	if payloadLen <= 0 || payloadLen > framer.MaxPayloadBytes {
		return framer.Parsed{}, stegoerr.ErrInvalidLength
	}

	remainingBits := 8 * (fnLen + payloadLen)
	bodyBits, ok := reader.ReadBits(remainingBits)
	if !ok {
		return framer.Parsed{}, stegoerr.ErrTruncatedStream
	}

	endBits, ok := reader.ReadBits(framer.SignatureBits)
	if !ok {
		return framer.Parsed{}, stegoerr.ErrTruncatedStream
	}

	full := make([]byte, 0, len(lenAndFnLenBits)+len(bodyBits)+len(endBits))
	full = append(full, lenAndFnLenBits...)
	full = append(full, bodyBits...)
	full = append(full, endBits...)

	return framer.Parse(full, k)
}

func packByte(bits []byte) byte {
	var b byte
	for i := 0; i < 8; i++ {
		b = b<<1 | bits[i]
	}
	return b
}

func bitsEqualLocal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// OutputPath returns dir/base(ext) if that path is unused; otherwise it tries
// _1, _2, ... before the extension until an unused path is found.
// exists is injected so tests don't touch the filesystem.
func OutputPath(dir, filename string, exists func(string) bool) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(dir, base)
	for n := 1; exists(candidate); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
	return candidate
}
