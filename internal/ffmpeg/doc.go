// Package ffmpeg builds and executes the loudness-normalization ffmpeg
// command: video and subtitle streams are stream-copied, audio is re-encoded
// to AAC through the loudnorm filter. It also condenses ffmpeg's stderr into
// a short per-job failure reason.
package ffmpeg
