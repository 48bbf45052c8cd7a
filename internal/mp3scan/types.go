// Package mp3scan locates the ID3v2 tag and enumerates MP3 audio frames in a
// byte stream, producing the set of protected byte positions the embedder
// must never touch.
package mp3scan

// Version identifies the MPEG version field of a frame header.
type Version int

const (
	Version2_5 Version = iota
	VersionReserved
	Version2
	Version1
)

// Layer identifies the MPEG layer field of a frame header.
type Layer int

const (
	LayerReserved Layer = iota
	LayerIII
	LayerII
	LayerI
)

// FrameHeader is the decoded form of a 4-byte MP3 frame header.
type FrameHeader struct {
	Version    Version
	Layer      Layer
	BitrateKbps int
	SampleRate int
	Padding    bool
	FrameLength int
}

// Frame is one located audio frame: its byte offset, total length (header +
// body), and decoded header.
type Frame struct {
	Offset int
	Length int
	Header FrameHeader
}
