package framer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mp3stego/internal/bitio"
	"mp3stego/internal/framer"
)

func TestAssembleParseRoundTrip(t *testing.T) {
	for k := 1; k <= 4; k++ {
		payload := []byte("hello")
		bits, err := framer.Assemble(k, "hello.txt", payload)
		require.NoError(t, err)

		// strip the start signature the same way the extractor does.
		body := bits[framer.SignatureBits:]
		parsed, err := framer.Parse(body, k)
		require.NoError(t, err)
		require.Equal(t, "hello.txt", parsed.Filename)
		require.Equal(t, payload, parsed.Payload)
		require.True(t, parsed.EndSigOK)
	}
}

func TestAssembleRejectsLongFilename(t *testing.T) {
	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}
	_, err := framer.Assemble(1, string(longName), []byte("x"))
	require.Error(t, err)
}

func TestParseRejectsZeroLength(t *testing.T) {
	lenBuf := []byte{0, 0, 0, 0, 0} // payload len=0, filename len=0
	bits := bitio.BytesToBits(lenBuf)
	_, err := framer.Parse(bits, 1)
	require.Error(t, err)
}

func TestParseDetectsEndSignatureMismatch(t *testing.T) {
	bits, err := framer.Assemble(1, "f", []byte("x"))
	require.NoError(t, err)
	body := bits[framer.SignatureBits:]
	// flip a bit in the trailing end signature.
	body[len(body)-1] ^= 1

	parsed, err := framer.Parse(body, 1)
	require.NoError(t, err)
	require.False(t, parsed.EndSigOK)
}

func TestBitsNeededMatchesAssemble(t *testing.T) {
	payload := []byte("secret payload")
	filename := "x.bin"
	bits, err := framer.Assemble(3, filename, payload)
	require.NoError(t, err)
	require.Equal(t, framer.BitsNeeded(len(filename), len(payload)), len(bits))
}

func TestSignaturesAreDistinctPairsPerWidth(t *testing.T) {
	seen := map[string]bool{}
	for k := 1; k <= 4; k++ {
		key := string(framer.StartSignature(k)) + "|" + string(framer.EndSignature(k))
		require.False(t, seen[key], "signature pair for k=%d collides with another width", k)
		seen[key] = true
	}
}
