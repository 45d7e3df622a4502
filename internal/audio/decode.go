package audio

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for data that is not WAV, MP3 or FLAC.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

type container string

const (
	containerUnknown container = ""
	containerWAV     container = "wav"
	containerMP3     container = "mp3"
	containerFLAC    container = "flac"
)

// detect sniffs the container from magic bytes and falls back to the
// extension of hint, which may be a path or a URL.
func detect(data []byte, hint string) container {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return containerWAV
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return containerFLAC
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return containerMP3
	case len(data) >= 2 && data[0] == 0xff && data[1]&0xe0 == 0xe0:
		return containerMP3
	}

	p := hint
	if u, err := url.Parse(hint); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".wav":
		return containerWAV
	case ".mp3":
		return containerMP3
	case ".flac":
		return containerFLAC
	}
	return containerUnknown
}

func decode(data []byte, hint string) (beep.StreamSeekCloser, beep.Format, error) {
	r := bytes.NewReader(data)
	switch detect(data, hint) {
	case containerWAV:
		return wav.Decode(r)
	case containerMP3:
		return mp3.Decode(io.NopCloser(r))
	case containerFLAC:
		return flac.Decode(r)
	}
	return nil, beep.Format{}, ErrUnsupportedFormat
}
