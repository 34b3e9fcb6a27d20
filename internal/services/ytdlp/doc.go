// Package ytdlp wraps the yt-dlp CLI to fetch a video's auto-generated
// caption track as WebVTT.
//
// Fetch runs yt-dlp with --write-auto-subs and --skip-download, waits for it
// to exit, and reads <base>.<lang>.vtt from the work directory. A stale file
// from an earlier run is removed first so a failed download cannot be masked.
// An exclusive lock on <base>.lock serializes runs sharing a work directory.
package ytdlp
