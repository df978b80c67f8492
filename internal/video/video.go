package video

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// video file information
type Info struct {
	Path     string
	Duration time.Duration
	Width    int
	Height   int
	Codec    string
}

// Seconds returns the duration as real-valued seconds, the unit the
// timeline works in.
func (i *Info) Seconds() float64 {
	return i.Duration.Seconds()
}

// JSON output from ffprobe
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe reads a media file's metadata via ffprobe.
func Probe(path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", path)
	}

	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q in ffprobe output: %w", out.Format.Duration, err)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("media file reports non-positive duration %g", seconds)
	}

	info := &Info{
		Path:     path,
		Duration: time.Duration(seconds * float64(time.Second)),
	}
	for _, stream := range out.Streams {
		if stream.CodecType == "video" {
			info.Width = stream.Width
			info.Height = stream.Height
			info.Codec = stream.CodecName
			break
		}
	}

	return info, nil
}
