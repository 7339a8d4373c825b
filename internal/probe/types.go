package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	NbStreams  int
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
// Attached-picture streams (cover art) are excluded during parsing.
type VideoStream struct {
	Index    int
	Codec    string
	Duration float64
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       int64
	Language      string
}

// Result is the fully parsed output of a single ffprobe JSON call.
type Result struct {
	Format       FormatInfo
	VideoStreams []VideoStream
	AudioStreams []AudioStream
}

// HasAudio reports whether the file carries at least one audio stream.
// Files without audio fail fast in the driver instead of producing an
// opaque loudnorm filter error from ffmpeg.
func (r *Result) HasAudio() bool {
	return len(r.AudioStreams) > 0
}

// Duration returns the container duration in seconds, falling back to the
// first video stream's duration when the format-level value is missing
// (mirrors the legacy two-step probe).
func (r *Result) Duration() float64 {
	if r.Format.Duration > 0 {
		return r.Format.Duration
	}
	if len(r.VideoStreams) > 0 {
		return r.VideoStreams[0].Duration
	}
	return 0
}
