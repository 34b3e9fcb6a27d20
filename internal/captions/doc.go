// Package captions turns a downloaded WebVTT auto-caption track into the
// compact text block handed to the summarization model.
//
// The work happens in three steps:
//
//   - Parse strips inline markup and yields one Cue per caption text line,
//     tagged with the start time of the timing line above it.
//   - Format removes the repetition typical of rolling auto-captions and
//     prefixes every Stride-th emitted line with its timestamp.
//   - Truncate caps the number of lines so the prompt stays within the model's
//     context budget; the caller reports how many lines were dropped.
//
// All state (notably the set of already-emitted lines) lives inside a single
// call. Nothing here touches the filesystem or the network.
package captions
