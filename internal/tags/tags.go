// Package tags reads ID3v2 metadata for diagnostic display in the compare
// command's --tags output. It never participates in the embed/extract
// byte-level contract: the ID3v2 region is already protected and passes
// through unmodified.
package tags

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"
)

// Summary is the subset of ID3v2 fields surfaced to the CLI.
type Summary struct {
	Title  string
	Artist string
	Album  string
	Year   string
}

// Read parses ID3v2 tags out of an in-memory MP3 byte slice. bogem/id3v2
// only opens from a path, so the bytes are staged through a temp file.
func Read(mp3Data []byte) (Summary, error) {
	tmp, err := os.CreateTemp("", "mp3stego-tags-*.mp3")
	if err != nil {
		return Summary{}, fmt.Errorf("stage temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(mp3Data); err != nil {
		return Summary{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Summary{}, fmt.Errorf("close temp file: %w", err)
	}

	tag, err := id3v2.Open(tmp.Name(), id3v2.Options{Parse: true})
	if err != nil {
		return Summary{}, fmt.Errorf("open id3v2 tag: %w", err)
	}
	defer tag.Close()

	return Summary{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
		Year:   tag.Year(),
	}, nil
}
