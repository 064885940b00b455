package ffmpeg

import "testing"

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"0/0", 0},
		{"garbage", 0},
		{"x/y", 0},
	}
	for _, c := range cases {
		if got := parseFrameRate(c.in); got != c.want {
			t.Errorf("parseFrameRate(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestIsVideoExtension(t *testing.T) {
	for _, ext := range []string{".mp4", ".MP4", ".mov", ".webm", ".avi", ".mkv"} {
		if !IsVideoExtension(ext) {
			t.Errorf("IsVideoExtension(%q) = false", ext)
		}
	}
	for _, ext := range []string{".txt", ".mp3", ".wav", "", "mp4"} {
		if IsVideoExtension(ext) {
			t.Errorf("IsVideoExtension(%q) = true", ext)
		}
	}
}
