package captions

import "strings"

// DefaultStride is the number of emitted lines between timestamp anchors.
const DefaultStride = 10

// DedupScope controls which repeated lines Format suppresses.
type DedupScope string

const (
	// DedupGlobal emits each distinct text at most once per call.
	DedupGlobal DedupScope = "global"
	// DedupAdjacent only suppresses a text equal to the line emitted just before it.
	DedupAdjacent DedupScope = "adjacent"
)

// FormatOptions configures Format.
type FormatOptions struct {
	TagTimestamps bool
	Stride        int
	DedupScope    DedupScope
}

// DefaultFormatOptions returns the options used when nothing is configured.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{TagTimestamps: true, Stride: DefaultStride, DedupScope: DedupGlobal}
}

// FormattedLine is one deduplicated caption line. An empty TimestampPrefix
// means the line is rendered without a timestamp.
type FormattedLine struct {
	Text            string
	TimestampPrefix string
}

func (l FormattedLine) String() string {
	if l.TimestampPrefix == "" {
		return l.Text
	}
	return l.TimestampPrefix + ": " + l.Text
}

type seenSet map[string]struct{}

func (s seenSet) add(text string) bool {
	if _, ok := s[text]; ok {
		return false
	}
	s[text] = struct{}{}
	return true
}

// Format drops blank and repeated cue texts and anchors every Stride-th
// emitted line to its cue timestamp.
func Format(cues []Cue, opts FormatOptions) []FormattedLine {
	stride := opts.Stride
	if stride <= 0 {
		stride = DefaultStride
	}
	seen := seenSet{}
	lines := make([]FormattedLine, 0, len(cues))
	var previous string

	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		switch opts.DedupScope {
		case DedupAdjacent:
			if len(lines) > 0 && text == previous {
				continue
			}
		default:
			if !seen.add(text) {
				continue
			}
		}
		previous = text

		line := FormattedLine{Text: text}
		if opts.TagTimestamps && len(lines)%stride == 0 {
			line.TimestampPrefix = cue.Timestamp
		}
		lines = append(lines, line)
	}
	return lines
}
