package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mp3stego/internal/diag"
	"mp3stego/internal/framer"
	"mp3stego/internal/mp3scan"
	"mp3stego/internal/stegoerr"
)

// mpeg1Layer3Frame builds one valid MPEG-1 Layer III frame (128kbps,
// 44100Hz, no padding) filled with the given byte, long enough to host a
// small embedded payload across many usable positions.
func mpeg1Layer3Frame(filler byte) []byte {
	header := []byte{0xFF, 0xFB, 0x90, 0x00}
	const frameLength = 417
	frame := make([]byte, frameLength)
	copy(frame, header)
	for i := 4; i < frameLength; i++ {
		frame[i] = filler
	}
	return frame
}

func sampleCover(numFrames int) []byte {
	var out []byte
	for i := 0; i < numFrames; i++ {
		out = append(out, mpeg1Layer3Frame(byte(0x55+i))...)
	}
	return out
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	cover := sampleCover(20)
	payload := []byte("the secret is in the noise floor")

	for k := 1; k <= 4; k++ {
		cfg := EmbedConfig{K: k}
		stego, err := Embed(cover, "note.txt", payload, cfg)
		require.NoError(t, err)
		require.Equal(t, len(cover), len(stego))

		ch := diag.New()
		got, err := Extract(stego, ExtractConfig{}, ch)
		require.NoError(t, err)
		require.Equal(t, k, got.K)
		require.Equal(t, "note.txt", got.Filename)
		require.Equal(t, payload, got.Payload)
	}
}

func TestEmbedExtractRoundTripEncrypted(t *testing.T) {
	cover := sampleCover(20)
	payload := []byte("attack at dawn")

	stego, err := Embed(cover, "msg.bin", payload, EmbedConfig{K: 2, Encrypt: true, Key: "lemon"})
	require.NoError(t, err)

	ch := diag.New()
	got, err := Extract(stego, ExtractConfig{Encrypted: true, Key: "lemon"}, ch)
	require.NoError(t, err)
	require.Equal(t, payload, got.Payload)
}

func TestEmbedExtractRoundTripRandomPosition(t *testing.T) {
	cover := sampleCover(30)
	payload := []byte("hidden at an offset derived from the key")

	stego, err := Embed(cover, "f.txt", payload, EmbedConfig{K: 3, RandomPosition: true, Key: "swordfish"})
	require.NoError(t, err)

	ch := diag.New()
	got, err := Extract(stego, ExtractConfig{RandomPosition: true, Key: "swordfish"}, ch)
	require.NoError(t, err)
	require.Equal(t, payload, got.Payload)
}

func TestEmbedWrongKeyStillExtractsWithoutRandomPosition(t *testing.T) {
	// Without RandomPosition the offset is always 0 regardless of key, so a
	// wrong decrypt key corrupts the payload rather than failing extraction.
	cover := sampleCover(20)
	payload := []byte("attack at dawn")

	stego, err := Embed(cover, "msg.bin", payload, EmbedConfig{K: 2, Encrypt: true, Key: "lemon"})
	require.NoError(t, err)

	ch := diag.New()
	got, err := Extract(stego, ExtractConfig{Encrypted: true, Key: "wrongkey"}, ch)
	require.NoError(t, err)
	require.NotEqual(t, payload, got.Payload)
}

func TestEmbedRandomPositionRequiresKey(t *testing.T) {
	cover := sampleCover(5)
	_, err := Embed(cover, "f.txt", []byte("x"), EmbedConfig{K: 1, RandomPosition: true})
	require.ErrorIs(t, err, stegoerr.ErrMissingKey)
}

func TestEmbedEncryptRequiresKey(t *testing.T) {
	cover := sampleCover(5)
	_, err := Embed(cover, "f.txt", []byte("x"), EmbedConfig{K: 1, Encrypt: true})
	require.ErrorIs(t, err, stegoerr.ErrMissingKey)
}

func TestEmbedRejectsInvalidK(t *testing.T) {
	cover := sampleCover(5)
	_, err := Embed(cover, "f.txt", []byte("x"), EmbedConfig{K: 5})
	require.ErrorIs(t, err, stegoerr.ErrInvalidParameter)
}

func TestEmbedRejectsNonMp3Cover(t *testing.T) {
	_, err := Embed([]byte("not an mp3 at all"), "f.txt", []byte("x"), EmbedConfig{K: 1})
	require.ErrorIs(t, err, stegoerr.ErrNotAnMp3)
}

func TestEmbedInsufficientCapacity(t *testing.T) {
	cover := sampleCover(1)
	hugePayload := make([]byte, 10_000)
	_, err := Embed(cover, "f.txt", hugePayload, EmbedConfig{K: 1})
	require.Error(t, err)
	var capErr *stegoerr.InsufficientCapacity
	require.ErrorAs(t, err, &capErr)
	require.Greater(t, capErr.Need, capErr.Have)
}

// shortMpeg2Frame builds one 72-byte MPEG-2 Layer III frame (16kbps,
// 16000Hz, no padding), small enough that its usable-position budget can't
// hold a full framed message — used to exercise truncation after a start
// signature has already matched.
func shortMpeg2Frame(filler byte) []byte {
	header := []byte{0xFF, 0xF3, 0x28, 0x00}
	const frameLength = 72
	frame := make([]byte, frameLength)
	copy(frame, header)
	for i := 4; i < frameLength; i++ {
		frame[i] = filler
	}
	return frame
}

func TestExtractTruncatedStreamAfterSignatureMatch(t *testing.T) {
	cover := shortMpeg2Frame(0x42)

	usable := mp3scan.UsablePositions(cover)
	require.NotEmpty(t, usable)

	// Plant only the 14-bit k=1 start signature at offset 0; the remaining
	// usable positions run out well before the 40-bit length/filename-length
	// field can be fully read.
	writeBits(cover, usable, 1, 0, framer.StartSignature(1))

	ch := diag.New()
	_, err := Extract(cover, ExtractConfig{}, ch)
	require.ErrorIs(t, err, stegoerr.ErrTruncatedStream)
	require.NotErrorIs(t, err, stegoerr.ErrSignatureNotFound)
}

func TestExtractNoSignatureFound(t *testing.T) {
	// Zero-filled frames: no k's low bits can spell any start signature.
	// (sampleCover's 0x55 filler would read back as the k=2 signature.)
	var cover []byte
	for i := 0; i < 5; i++ {
		cover = append(cover, mpeg1Layer3Frame(0x00)...)
	}
	ch := diag.New()
	_, err := Extract(cover, ExtractConfig{}, ch)
	require.ErrorIs(t, err, stegoerr.ErrSignatureNotFound)
}

func TestCapacityReportsUsableAndBits(t *testing.T) {
	cover := sampleCover(10)
	usable, bits, err := Capacity(cover, 2)
	require.NoError(t, err)
	require.Greater(t, usable, 0)
	require.Equal(t, usable*2, bits)
}

func TestCapacityRejectsInvalidK(t *testing.T) {
	cover := sampleCover(1)
	_, _, err := Capacity(cover, 0)
	require.ErrorIs(t, err, stegoerr.ErrInvalidParameter)
}

func TestOutputPathAvoidsCollisions(t *testing.T) {
	existing := map[string]bool{
		"out/note.txt":   true,
		"out/note_1.txt": true,
	}
	got := OutputPath("out", "note.txt", func(p string) bool { return existing[p] })
	require.Equal(t, "out/note_2.txt", got)
}
