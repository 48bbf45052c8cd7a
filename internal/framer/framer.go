// Package framer assembles and parses the framed message that is embedded
// into the cover's usable byte positions.
package framer

import (
	"encoding/binary"
	"unicode/utf8"

	"mp3stego/internal/bitio"
	"mp3stego/internal/stegoerr"
)

// SignatureBits is the length, in bits, of each start/end signature.
const SignatureBits = 14

// signature pairs are fixed wire-format constants; they double as both
// frame delimiters and the sole discriminator of the LSB width k.
var startSignatures = map[int]string{
	1: "10101010101010",
	2: "01010101010101",
	3: "10101010101010",
	4: "01010101010101",
}

var endSignatures = map[int]string{
	1: "10101010101010",
	2: "01010101010101",
	3: "01010101010101",
	4: "10101010101010",
}

func bitString(s string) []byte {
	bits := make([]byte, len(s))
	for i, c := range s {
		if c == '1' {
			bits[i] = 1
		}
	}
	return bits
}

// StartSignature returns the literal 14-bit start signature for width k.
func StartSignature(k int) []byte { return bitString(startSignatures[k]) }

// EndSignature returns the literal 14-bit end signature for width k.
func EndSignature(k int) []byte { return bitString(endSignatures[k]) }

// MaxFilenameBytes is the largest filename length the 1-byte length field
// can carry.
const MaxFilenameBytes = 255

// MaxPayloadBytes is the sanity bound applied to the decoded length field:
// 100 MiB.
const MaxPayloadBytes = 100 * 1024 * 1024

// Assemble builds the ordered bit stream:
//
//	start_sig_k . len(payload)[4 LE bytes] . len(filename)[1 byte] . filename . payload . end_sig_k
//
// payload must already be encrypted by the caller, if encryption is enabled;
// Assemble only frames it.
func Assemble(k int, filename string, payload []byte) ([]byte, error) {
	fnBytes := []byte(filename)
	if len(fnBytes) > MaxFilenameBytes {
		return nil, stegoerr.ErrFilenameTooLong
	}

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(payload)))

	var body []byte
	body = append(body, lenBuf...)
	body = append(body, byte(len(fnBytes)))
	body = append(body, fnBytes...)
	body = append(body, payload...)

	bits := make([]byte, 0, SignatureBits+len(body)*8+SignatureBits)
	bits = append(bits, StartSignature(k)...)
	bits = append(bits, bitio.BytesToBits(body)...)
	bits = append(bits, EndSignature(k)...)
	return bits, nil
}

// BitsNeeded returns the total bit length of the framed message for a given
// filename and (already-encrypted) payload size, per the invariant in §3.
func BitsNeeded(filenameLen, payloadLen int) int {
	return SignatureBits + 8*(4+1+filenameLen+payloadLen) + SignatureBits
}

// Parsed holds the fields recovered from a framed bit stream, excluding the
// signatures themselves.
type Parsed struct {
	Filename       string
	Payload        []byte
	EndSigOK       bool
	FilenameWasRaw bool // true if UTF-8 decoding of the filename bytes fell back
}

// Parse reads body fields out of bits, which must begin immediately after
// the start signature has already been consumed by the caller (bits[0] is
// the first bit of the little-endian length field). It reads exactly as
// many bits as the decoded lengths require, then checks the trailing
// SignatureBits against the expected end signature for k — a mismatch is
// reported via EndSigOK=false, not an error, per the warn-not-fail policy.
func Parse(bits []byte, k int) (Parsed, error) {
	if len(bits) < 8*5 {
		return Parsed{}, stegoerr.ErrTruncatedStream
	}

	lenAndFnLenBytes := bitio.BitsToBytes(bits[:8*5])
	payloadLen := binary.LittleEndian.Uint32(lenAndFnLenBytes[0:4])
	if payloadLen == 0 || payloadLen > MaxPayloadBytes {
		return Parsed{}, stegoerr.ErrInvalidLength
	}
	fnLen := int(lenAndFnLenBytes[4])

	needed := 8 * (5 + fnLen + int(payloadLen))
	if len(bits) < needed+SignatureBits {
		return Parsed{}, stegoerr.ErrTruncatedStream
	}

	allBytes := bitio.BitsToBytes(bits[:needed])
	fnBytes := allBytes[5 : 5+fnLen]
	payload := allBytes[5+fnLen : 5+fnLen+int(payloadLen)]

	filename := string(fnBytes)
	rawFallback := !utf8.Valid(fnBytes)
	if rawFallback {
		filename = "extracted_file.bin"
	}

	endBits := bits[needed : needed+SignatureBits]
	endSigOK := bitsEqual(endBits, EndSignature(k))

	return Parsed{
		Filename:       filename,
		Payload:        payload,
		EndSigOK:       endSigOK,
		FilenameWasRaw: rawFallback,
	}, nil
}

func bitsEqual(a, b []byte) bool {
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
