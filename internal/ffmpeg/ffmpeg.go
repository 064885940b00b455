package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrProbe marks failures to determine source media metadata. A video whose
// duration cannot be probed cannot be chunked and is abandoned.
var ErrProbe = errors.New("media probe failed")

// MediaInfo holds the metadata ffprobe reports for a source file.
type MediaInfo struct {
	Duration    float64
	Width       int
	Height      int
	FrameRate   float64
	VideoCodec  string
	BitrateKbps int
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors the ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe uses ffprobe to read duration, resolution, frame rate, codec and
// bitrate for a media file.
func Probe(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("%w: ffprobe not found: %v", ErrProbe, err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe: %v", ErrProbe, err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("%w: ffprobe JSON: %v", ErrProbe, err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("%w: no duration for %s", ErrProbe, filepath.Base(path))
	}

	info := &MediaInfo{Duration: duration}
	if kbps, err := strconv.Atoi(probe.Format.BitRate); err == nil {
		info.BitrateKbps = kbps / 1000
	}

	for _, s := range probe.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.VideoCodec = s.CodecName
		info.Width = s.Width
		info.Height = s.Height
		info.FrameRate = parseFrameRate(s.RFrameRate)
		break
	}

	return info, nil
}

// parseFrameRate evaluates ffprobe's fractional r_frame_rate, e.g. "30000/1001".
func parseFrameRate(r string) float64 {
	num, den, ok := strings.Cut(r, "/")
	if !ok {
		fps, _ := strconv.ParseFloat(r, 64)
		return fps
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// ExtractSegment cuts [start, start+duration) out of src into dst.
// It first tries a stream copy, which is fast but can fail when the
// container cannot split at that boundary; in that case it re-encodes
// the segment. Only a failure of both paths is an error.
func ExtractSegment(ctx context.Context, src, dst string, start, duration float64) error {
	copyCmd := exec.CommandContext(ctx,
		"ffmpeg", "-y",
		"-ss", formatSeconds(start),
		"-i", src,
		"-t", formatSeconds(duration),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		dst,
	)
	if out, err := copyCmd.CombinedOutput(); err != nil {
		slog.Debug("stream copy failed, re-encoding segment",
			"src", filepath.Base(src),
			"start", start,
			"err", err,
			"output", truncateOutput(out))

		encodeCmd := exec.CommandContext(ctx,
			"ffmpeg", "-y",
			"-ss", formatSeconds(start),
			"-i", src,
			"-t", formatSeconds(duration),
			"-c:v", "libx264", "-preset", "ultrafast",
			"-c:a", "aac",
			dst,
		)
		if out, err := encodeCmd.CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg re-encode failed: %w\n%s", err, truncateOutput(out))
		}
	}
	return nil
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func truncateOutput(out []byte) string {
	const max = 512
	if len(out) > max {
		return string(out[len(out)-max:])
	}
	return string(out)
}

// IsVideoExtension returns true for the video file extensions the pipeline accepts.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mov", ".webm", ".avi", ".mkv":
		return true
	}
	return false
}
