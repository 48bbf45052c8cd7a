package mp3scan

import (
	"encoding/binary"
)

// DefaultMinConsec is the minimum run length of consecutive valid frames
// that FindFrames accepts as a whole run; a shorter run contributes only its
// first frame.
const DefaultMinConsec = 3

// DefaultMaxScan bounds how many bytes FindFrames will scan from its start
// position, so a huge non-MP3 input cannot cause a pathological stall.
const DefaultMaxScan = 2_000_000

// bitrate tables in kbps, indexed [layer][bitrateIndex]; index 0 means
// "free format" (rejected here) and 15 means reserved (also rejected).
var bitrateTableMPEG1 = map[Layer][16]int{
	LayerI:   {0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	LayerII:  {0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
	LayerIII: {0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
}

var bitrateTableMPEG2 = map[Layer][16]int{
	LayerI:   {0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	LayerII:  {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	LayerIII: {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

var sampleRateTable = map[Version][4]int{
	Version1:   {44100, 48000, 32000, 0},
	Version2:   {22050, 24000, 16000, 0},
	Version2_5: {11025, 12000, 8000, 0},
}

// syncSafeToInt decodes a 4-byte syncsafe integer: 7 significant bits per
// byte, used for the ID3v2 tag size field.
func syncSafeToInt(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

// FindID3v2End returns the byte offset just past the ID3v2 tag, or 0 if no
// tag is present (or the input is too short to hold one).
func FindID3v2End(data []byte) int {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return 0
	}
	return 10 + syncSafeToInt(data[6:10])
}

// ParseFrameHeader decodes a 4-byte MP3 frame header. ok is false when the
// sync word, version, layer, bitrate index, or sample-rate index is
// reserved/invalid.
func ParseFrameHeader(b []byte) (h FrameHeader, ok bool) {
	if len(b) < 4 {
		return FrameHeader{}, false
	}
	header := binary.BigEndian.Uint32(b)

	if header>>21&0x7FF != 0x7FF {
		return FrameHeader{}, false
	}

	version := Version(header >> 19 & 0x3)
	layer := Layer(header >> 17 & 0x3)
	bitrateIdx := int(header >> 12 & 0xF)
	sampleRateIdx := int(header >> 10 & 0x3)
	padding := header>>9&0x1 == 1

	if version == VersionReserved || layer == LayerReserved {
		return FrameHeader{}, false
	}
	if bitrateIdx == 0 || bitrateIdx == 15 {
		return FrameHeader{}, false
	}
	if sampleRateIdx == 3 {
		return FrameHeader{}, false
	}

	var brTable [16]int
	if version == Version1 {
		brTable = bitrateTableMPEG1[layer]
	} else {
		brTable = bitrateTableMPEG2[layer]
	}
	brKbps := brTable[bitrateIdx]
	sr := sampleRateTable[version][sampleRateIdx]
	if brKbps == 0 || sr == 0 {
		return FrameHeader{}, false
	}

	pad := 0
	if padding {
		pad = 1
	}

	var frameLen int
	switch {
	case layer == LayerI:
		frameLen = (12*brKbps*1000/sr + pad) * 4
	case layer == LayerII, version == Version1:
		// Layer II at any version, or Layer III on MPEG-1.
		frameLen = 144000*brKbps/sr + pad
	default:
		// Layer III on MPEG-2/2.5.
		frameLen = 72000*brKbps/sr + pad
	}

	return FrameHeader{
		Version:     version,
		Layer:       layer,
		BitrateKbps: brKbps,
		SampleRate:  sr,
		Padding:     padding,
		FrameLength: frameLen,
	}, true
}

// FindFrames linearly scans data from start (bounded by maxScan bytes),
// locating runs of consecutive valid frame headers. A run of at least
// minConsec frames is emitted whole and the scan resumes after it; a shorter
// run emits only its first (tentative) frame and the scan resumes right
// after that frame. maxScan <= 0 selects DefaultMaxScan, minConsec <= 0
// selects DefaultMinConsec.
func FindFrames(data []byte, start int, minConsec int, maxScan int) []Frame {
	if minConsec <= 0 {
		minConsec = DefaultMinConsec
	}
	if maxScan <= 0 {
		maxScan = DefaultMaxScan
	}

	limit := start + maxScan
	if limit > len(data) {
		limit = len(data)
	}

	var frames []Frame
	pos := start
	for pos+4 <= limit {
		h, ok := ParseFrameHeader(data[pos : pos+4])
		if !ok || pos+h.FrameLength > len(data) {
			pos++
			continue
		}

		run := []Frame{{Offset: pos, Length: h.FrameLength, Header: h}}
		cursor := pos + h.FrameLength
		for cursor+4 <= len(data) {
			nh, nok := ParseFrameHeader(data[cursor : cursor+4])
			if !nok || cursor+nh.FrameLength > len(data) {
				break
			}
			run = append(run, Frame{Offset: cursor, Length: nh.FrameLength, Header: nh})
			cursor += nh.FrameLength
		}

		if len(run) >= minConsec {
			frames = append(frames, run...)
			pos = cursor
		} else {
			frames = append(frames, run[0])
			pos = run[0].Offset + run[0].Length
		}
	}
	return frames
}

// BuildProtectedIndices returns the set of byte positions that must never be
// mutated: the ID3v2 tag (if present) plus, for every located frame, its
// 4-byte header, a conservative post-header band covering side-info/scale
// factors, and a trailing band.
func BuildProtectedIndices(data []byte) map[int]struct{} {
	protected := make(map[int]struct{})

	id3End := FindID3v2End(data)
	for i := 0; i < id3End && i < len(data); i++ {
		protected[i] = struct{}{}
	}

	frames := FindFrames(data, id3End, DefaultMinConsec, DefaultMaxScan)
	for _, f := range frames {
		fs, fl := f.Offset, f.Length

		for i := fs; i < fs+4 && i < len(data); i++ {
			protected[i] = struct{}{}
		}

		postEnd := fs + 36
		if fs+fl < postEnd {
			postEnd = fs + fl
		}
		for i := fs + 4; i < postEnd && i < len(data); i++ {
			protected[i] = struct{}{}
		}

		trailStart := fs + fl - 10
		if fs+4 > trailStart {
			trailStart = fs + 4
		}
		for i := trailStart; i < fs+fl && i < len(data); i++ {
			protected[i] = struct{}{}
		}
	}

	return protected
}

// UsablePositions returns the complement of the protected set, ascending.
func UsablePositions(data []byte) []int {
	protected := BuildProtectedIndices(data)
	usable := make([]int, 0, len(data)-len(protected))
	for i := range data {
		if _, blocked := protected[i]; !blocked {
			usable = append(usable, i)
		}
	}
	return usable
}

// LooksLikeMp3 checks the cheap header-gate from §6: the leading bytes must
// be either "ID3" or an MPEG Layer III sync (0xFF 0xFB/0xF3/0xF2).
func LooksLikeMp3(data []byte) bool {
	if len(data) < 3 {
		return false
	}
	if string(data[0:3]) == "ID3" {
		return true
	}
	if len(data) < 2 {
		return false
	}
	if data[0] != 0xFF {
		return false
	}
	switch data[1] {
	case 0xFB, 0xF3, 0xF2:
		return true
	default:
		return false
	}
}
