package captions

import (
	"fmt"
	"strings"
)

// DefaultMaxLines approximates the model's context budget in caption lines.
const DefaultMaxLines = 400

// TruncateResult holds the retained lines and how many were cut.
type TruncateResult struct {
	Lines   []FormattedLine
	Dropped int
}

// Truncate keeps the first maxLines lines. maxLines <= 0 keeps everything.
func Truncate(lines []FormattedLine, maxLines int) TruncateResult {
	if maxLines <= 0 || len(lines) <= maxLines {
		return TruncateResult{Lines: lines}
	}
	return TruncateResult{Lines: lines[:maxLines], Dropped: len(lines) - maxLines}
}

// JoinLines renders lines one per row, without a trailing newline.
func JoinLines(lines []FormattedLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.String())
	}
	return b.String()
}

// HasTimestamps reports whether any line carries a timestamp prefix.
func HasTimestamps(lines []FormattedLine) bool {
	for _, line := range lines {
		if line.TimestampPrefix != "" {
			return true
		}
	}
	return false
}

// CutoffNotice is the message printed when Truncate dropped lines.
func CutoffNotice(dropped int) string {
	if dropped <= 0 {
		return ""
	}
	plural := "s"
	if dropped == 1 {
		plural = ""
	}
	return fmt.Sprintf("Cut off %d subtitle line%s, to avoid hitting the token limit...", dropped, plural)
}
