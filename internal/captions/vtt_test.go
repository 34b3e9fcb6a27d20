package captions

import (
	"errors"
	"strings"
	"testing"

	"capsum/internal/services"
)

const sampleVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n" +
	"00:00:01.000 --> 00:00:04.000 align:start position:0%\n" +
	"hello<00:00:02.120><c> world</c>\n\n" +
	"00:00:04.000 --> 00:00:07.000 align:start position:0%\n" +
	"hello world\n" +
	"goodbye\n"

func TestParseStripsTagsAndAssignsTimestamps(t *testing.T) {
	cues, err := Parse([]byte(sampleVTT), StyleAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []Cue{
		{Timestamp: "00:01", Text: "hello world"},
		{Timestamp: "00:04", Text: "hello world"},
		{Timestamp: "00:04", Text: "goodbye"},
	}
	if len(cues) != len(want) {
		t.Fatalf("expected %d cues, got %d: %+v", len(want), len(cues), cues)
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Fatalf("cue %d: got %+v want %+v", i, cues[i], want[i])
		}
	}
}

func TestParseLeavesNoAngleBrackets(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<v Speaker>a <b>bold</b> <i>move</i>\r\n<c.colorE5E5E5>tail</c>\n"
	cues, err := Parse([]byte(raw), StyleAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", cues)
	}
	for _, cue := range cues {
		if strings.ContainsAny(cue.Text, "<>") {
			t.Fatalf("cue still contains markup: %q", cue.Text)
		}
	}
	if cues[0].Text != "a bold move" {
		t.Fatalf("unexpected text %q", cues[0].Text)
	}
}

func TestParseIgnoresHeaderLines(t *testing.T) {
	cues, err := Parse([]byte("WEBVTT\nKind: captions\nLanguage: en\n"), StyleAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %+v", cues)
	}
}

func TestParseTimestampStyles(t *testing.T) {
	raw := []byte("01:02:03.000 --> 01:02:05.000\nlate line\n")
	cases := []struct {
		style TimestampStyle
		want  string
	}{
		{StyleAuto, "1:02:03"},
		{StyleMinutes, "02:03"},
	}
	for _, tc := range cases {
		cues, err := Parse(raw, tc.style)
		if err != nil {
			t.Fatalf("Parse(%s) returned error: %v", tc.style, err)
		}
		if len(cues) != 1 || cues[0].Timestamp != tc.want {
			t.Fatalf("style %s: got %+v want timestamp %q", tc.style, cues, tc.want)
		}
	}
}

func TestParseNormalizesToNFC(t *testing.T) {
	raw := []byte("00:00:01.000 --> 00:00:02.000\ncafe\u0301\n")
	cues, err := Parse(raw, StyleAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "caf\u00e9" {
		t.Fatalf("expected composed text, got %+v", cues)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("00:00:01.000 --> 00:00:02.000\n\xff\xfe\n"), StyleAuto)
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestParseAcceptsIndentedTimingLine(t *testing.T) {
	raw := []byte("WEBVTT\n\n  00:00:01.000 --> 00:00:04.000\nhello\n")
	cues, err := Parse(raw, StyleAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 1 || cues[0] != (Cue{Timestamp: "00:01", Text: "hello"}) {
		t.Fatalf("expected one cue under the indented timing line, got %+v", cues)
	}
}
