package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"capsum/internal/logging"
	"capsum/internal/services"
)

type stubRunner struct {
	calls   [][]string
	content string
	err     error
}

func (s *stubRunner) Runner(_ context.Context, name string, args ...string) error {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.err != nil {
		return s.err
	}
	if s.content == "" {
		return nil
	}
	var output string
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			output = args[i+1]
		}
	}
	return os.WriteFile(output+".en.vtt", []byte(s.content), 0o644)
}

func TestFetchReadsCaptionFile(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRunner{content: "WEBVTT\n"}
	d := New(Options{WorkDir: dir, KeepCaptions: true}, logging.NewNop(), WithCommandRunner(stub.Runner))

	data, err := d.Fetch(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "WEBVTT\n" {
		t.Fatalf("unexpected data %q", data)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(stub.calls))
	}
	call := strings.Join(stub.calls[0], " ")
	for _, want := range []string{"yt-dlp ", "--write-auto-subs", "--skip-download", "--sub-langs en", "--sub-format vtt", "-- https://youtu.be/abc"} {
		if !strings.Contains(call, want) {
			t.Fatalf("expected %q in command %q", want, call)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "subs.en.vtt")); err != nil {
		t.Fatalf("expected caption file to be kept: %v", err)
	}
}

func TestFetchRemovesCaptionsWhenNotKept(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRunner{content: "WEBVTT\n"}
	d := New(Options{WorkDir: dir}, nil, WithCommandRunner(stub.Runner))

	if _, err := d.Fetch(context.Background(), "abc"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if _, err := os.Stat(d.CaptionPath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected caption file removed, stat err=%v", err)
	}
}

func TestFetchRunnerFailure(t *testing.T) {
	stub := &stubRunner{err: errors.New("exit status 1: ERROR: Unsupported URL")}
	d := New(Options{WorkDir: t.TempDir()}, nil, WithCommandRunner(stub.Runner))

	_, err := d.Fetch(context.Background(), "not-a-video")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrDownload) || !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected download error markers, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unsupported URL") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestFetchStaleFileDoesNotMaskMissingCaptions(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "subs.en.vtt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}
	stub := &stubRunner{}
	d := New(Options{WorkDir: dir, KeepCaptions: true}, nil, WithCommandRunner(stub.Runner))

	_, err := d.Fetch(context.Background(), "abc")
	if !errors.Is(err, ErrCaptionsMissing) {
		t.Fatalf("expected ErrCaptionsMissing, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}

func TestFetchRequiresVideo(t *testing.T) {
	d := New(Options{WorkDir: t.TempDir()}, nil)
	if _, err := d.Fetch(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	d := New(Options{}, nil)
	if d.opts.Binary != "yt-dlp" || d.opts.BaseName != "subs" || d.opts.Language != "en" {
		t.Fatalf("unexpected defaults %+v", d.opts)
	}
	if d.CaptionPath() != "subs.en.vtt" {
		t.Fatalf("unexpected caption path %q", d.CaptionPath())
	}
}

func TestFetchReleasesWorkDirLock(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRunner{content: "WEBVTT\n"}
	d := New(Options{WorkDir: dir, KeepCaptions: true}, nil, WithCommandRunner(stub.Runner))

	if _, err := d.Fetch(context.Background(), "abc"); err != nil {
		t.Fatalf("first Fetch returned error: %v", err)
	}
	other := flock.New(filepath.Join(dir, "subs.lock"))
	locked, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock returned error: %v", err)
	}
	if !locked {
		t.Fatal("expected work dir lock to be released after Fetch")
	}
	if err := other.Unlock(); err != nil {
		t.Fatalf("Unlock returned error: %v", err)
	}
	if _, err := d.Fetch(context.Background(), "abc"); err != nil {
		t.Fatalf("second Fetch returned error: %v", err)
	}
}
