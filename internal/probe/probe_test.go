package probe

import (
	"testing"
)

const sampleJSON = `{
	"streams": [
		{
			"index": 0,
			"codec_name": "h264",
			"codec_type": "video",
			"duration": "120.500000",
			"disposition": {"attached_pic": 0}
		},
		{
			"index": 1,
			"codec_name": "ac3",
			"codec_type": "audio",
			"channels": 6,
			"channel_layout": "5.1",
			"sample_rate": "48000",
			"bit_rate": "384000",
			"disposition": {"default": 1},
			"tags": {"language": "eng"}
		},
		{
			"index": 2,
			"codec_name": "mjpeg",
			"codec_type": "video",
			"disposition": {"attached_pic": 1}
		},
		{
			"index": 3,
			"codec_name": "subrip",
			"codec_type": "subtitle"
		}
	],
	"format": {
		"filename": "movie.mkv",
		"nb_streams": 4,
		"format_name": "matroska,webm",
		"duration": "120.512000",
		"size": "734003200",
		"bit_rate": "4800000"
	}
}`

func TestParseJSON(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if pr.Format.Filename != "movie.mkv" {
		t.Errorf("Filename = %q", pr.Format.Filename)
	}
	if pr.Format.Size != 734003200 {
		t.Errorf("Size = %d, want 734003200", pr.Format.Size)
	}
	if pr.Format.Duration < 120.5 || pr.Format.Duration > 120.52 {
		t.Errorf("Duration = %f", pr.Format.Duration)
	}

	if len(pr.VideoStreams) != 1 {
		t.Fatalf("VideoStreams = %d, want 1 (attached pic excluded)", len(pr.VideoStreams))
	}
	if pr.VideoStreams[0].Codec != "h264" {
		t.Errorf("video codec = %q", pr.VideoStreams[0].Codec)
	}

	if len(pr.AudioStreams) != 1 {
		t.Fatalf("AudioStreams = %d, want 1", len(pr.AudioStreams))
	}
	a := pr.AudioStreams[0]
	if a.Codec != "ac3" || a.Channels != 6 || a.SampleRate != 48000 || a.BitRate != 384000 {
		t.Errorf("audio stream = %+v", a)
	}
	if a.Language != "eng" {
		t.Errorf("audio language = %q", a.Language)
	}

	if !pr.HasAudio() {
		t.Error("HasAudio() should be true")
	}
}

func TestParseJSON_NoAudio(t *testing.T) {
	pr, err := ParseJSON([]byte(`{
		"streams": [{"index": 0, "codec_name": "h264", "codec_type": "video"}],
		"format": {"filename": "silent.mp4", "nb_streams": 1}
	}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.HasAudio() {
		t.Error("HasAudio() should be false")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("ParseJSON should fail on invalid input")
	}
}

func TestDuration_FallsBackToVideoStream(t *testing.T) {
	pr, err := ParseJSON([]byte(`{
		"streams": [{"index": 0, "codec_name": "h264", "codec_type": "video", "duration": "42.0"}],
		"format": {"filename": "x.mp4"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if pr.Duration() != 42 {
		t.Errorf("Duration() = %f, want 42", pr.Duration())
	}
}
