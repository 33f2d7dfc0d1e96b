package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
	".ogg":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".oga":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
}

// SupportedFormats lists the file extensions Open can decode.
func SupportedFormats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// decodeFile opens path and picks a decoder from its extension. The returned
// streamer owns the file and closes it on Close.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, loadError(path, ErrFileUnreadable, err)
	}
	if info, err := f.Stat(); err != nil || info.IsDir() {
		f.Close()
		if err == nil {
			err = errors.New("is a directory")
		}
		return nil, beep.Format{}, loadError(path, ErrFileUnreadable, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		f.Close()
		return nil, beep.Format{}, loadError(path, ErrUnsupportedFormat, fmt.Errorf("extension %q", ext))
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, loadError(path, ErrUnsupportedFormat, fmt.Errorf("decode: %w", err))
	}
	if format.SampleRate <= 0 || streamer.Len() < 0 {
		streamer.Close()
		return nil, beep.Format{}, loadError(path, ErrUnsupportedFormat, errors.New("invalid stream header"))
	}
	return streamer, format, nil
}
