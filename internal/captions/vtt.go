package captions

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"capsum/internal/services"
)

// ErrInvalidEncoding reports caption input that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("caption text is not valid UTF-8")

// TimestampStyle selects how cue start times are labelled.
type TimestampStyle string

const (
	// StyleAuto prints MM:SS for the first hour and H:MM:SS afterwards.
	StyleAuto TimestampStyle = "auto"
	// StyleMinutes always prints MM:SS and discards the hour.
	StyleMinutes TimestampStyle = "minutes"
)

var (
	inlineTagPattern = regexp.MustCompile(`<.*?>`)
	timingPattern    = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}`)
)

// Cue is a single caption text line and the start time of its block.
type Cue struct {
	Timestamp string
	Text      string
}

// Parse extracts cues from raw WebVTT data. Lines before the first timing line
// (the WEBVTT header and its metadata) are ignored.
func Parse(raw []byte, style TimestampStyle) ([]Cue, error) {
	if !utf8.Valid(raw) {
		return nil, services.Wrap(services.ErrValidation, "parse", "decode captions", "", ErrInvalidEncoding)
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = inlineTagPattern.ReplaceAllString(text, "")

	var (
		cues    []Cue
		current string
		inBlock bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if match := timingPattern.FindStringSubmatch(trimmed); match != nil {
			current = timestampLabel(match[1], match[2], match[3], style)
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		if trimmed == "" {
			continue
		}
		cues = append(cues, Cue{Timestamp: current, Text: norm.NFC.String(trimmed)})
	}
	return cues, nil
}

func timestampLabel(hours, minutes, seconds string, style TimestampStyle) string {
	if style == StyleMinutes || hours == "00" {
		return minutes + ":" + seconds
	}
	if len(hours) > 1 && hours[0] == '0' {
		hours = hours[1:]
	}
	return hours + ":" + minutes + ":" + seconds
}
