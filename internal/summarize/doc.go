// Package summarize runs the end-to-end caption summary for one video.
//
// Pipeline.Run downloads the auto-captions, parses, deduplicates and
// truncates them, builds the prompt, reads the bearer token, and prints the
// model's reply. Progress notices and the reply go to the configured writer
// (stdout in the CLI); diagnostic logs go to the logger and carry a per-run
// run_id.
package summarize
