// Package prompt assembles the chat messages sent to the summarization model.
package prompt

import "strings"

// SystemInstruction is the role message sent with every summary request.
const SystemInstruction = "You summarize the video whose subtitles you are given. After the quick summary, provide a very detailed listing of each subject discussed and the corresponding timestamps where each subject can be found."

const (
	beginMarker = "--- BEGIN SUBTITLES ---"
	endMarker   = "--- END SUBTITLES ---"

	summaryDirective   = "Give a quick summary of the video, then a detailed breakdown of every topic it covers."
	timestampDirective = "For each topic, list the timestamps where it is discussed. Timestamps in the subtitles appear as a prefix like \"12:34: \"."
)

// Prompt is the immutable pair of messages for one summary request.
type Prompt struct {
	SystemInstruction string
	UserContent       string
}

// Build wraps the subtitle text in the user directive. The timestamp request
// is only included when the subtitle text carries timestamp prefixes.
func Build(subtitleText string, hasTimestamps bool) Prompt {
	var b strings.Builder
	b.WriteString(summaryDirective)
	if hasTimestamps {
		b.WriteByte(' ')
		b.WriteString(timestampDirective)
	}
	b.WriteString("\n\n")
	b.WriteString(beginMarker)
	b.WriteByte('\n')
	if subtitleText != "" {
		b.WriteString(subtitleText)
		b.WriteByte('\n')
	}
	b.WriteString(endMarker)
	return Prompt{SystemInstruction: SystemInstruction, UserContent: b.String()}
}

// Render returns both messages as plain text, used by dry runs.
func (p Prompt) Render() string {
	return "[system]\n" + p.SystemInstruction + "\n\n[user]\n" + p.UserContent + "\n"
}
