package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"capsum/internal/logging"
	"capsum/internal/services"
)

var (
	// ErrDownload reports that yt-dlp exited unsuccessfully.
	ErrDownload = errors.New("caption download failed")
	// ErrCaptionsMissing reports that yt-dlp succeeded but wrote no caption file.
	ErrCaptionsMissing = errors.New("caption file missing")
)

const lockRetryDelay = 250 * time.Millisecond

type commandRunner func(ctx context.Context, name string, args ...string) error

// Options describes where and how captions are fetched.
type Options struct {
	Binary       string
	WorkDir      string
	BaseName     string
	Language     string
	KeepCaptions bool
}

// Option customizes the downloader.
type Option func(*Downloader)

// WithCommandRunner injects a custom command runner (primarily for tests).
func WithCommandRunner(runner commandRunner) Option {
	return func(d *Downloader) {
		if runner != nil {
			d.run = runner
		}
	}
}

// Downloader fetches auto-generated captions with yt-dlp.
type Downloader struct {
	opts   Options
	logger *slog.Logger
	run    commandRunner
}

// New constructs a Downloader.
func New(opts Options, logger *slog.Logger, options ...Option) *Downloader {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = "yt-dlp"
	}
	if strings.TrimSpace(opts.BaseName) == "" {
		opts.BaseName = "subs"
	}
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = "en"
	}
	if strings.TrimSpace(opts.WorkDir) == "" {
		opts.WorkDir = "."
	}
	d := &Downloader{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "ytdlp"),
		run:    defaultCommandRunner,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// CaptionPath returns the file yt-dlp is expected to write.
func (d *Downloader) CaptionPath() string {
	return filepath.Join(d.opts.WorkDir, fmt.Sprintf("%s.%s.vtt", d.opts.BaseName, d.opts.Language))
}

// Args returns the yt-dlp arguments used for video.
func (d *Downloader) Args(video string) []string {
	return []string{
		"--write-auto-subs",
		"--skip-download",
		"--sub-langs", d.opts.Language,
		"--sub-format", "vtt",
		"-o", filepath.Join(d.opts.WorkDir, d.opts.BaseName),
		"--",
		video,
	}
}

// Fetch downloads the auto-caption track for video and returns its raw bytes.
// The work directory is locked for the duration so concurrent runs cannot
// overwrite each other's caption file. The lock file itself stays in place;
// removing it after unlock would let a waiting run lock an unlinked inode.
func (d *Downloader) Fetch(ctx context.Context, video string) ([]byte, error) {
	if strings.TrimSpace(video) == "" {
		return nil, services.Wrap(services.ErrValidation, "download", "fetch captions", "video reference required", nil)
	}

	lock := flock.New(filepath.Join(d.opts.WorkDir, d.opts.BaseName+".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "download", "lock work dir", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "download", "lock work dir", "work directory is busy", nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			d.logger.Warn("release work dir lock failed", logging.Error(err))
		}
	}()

	captionPath := d.CaptionPath()
	if err := os.Remove(captionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, services.Wrap(services.ErrConfiguration, "download", "remove stale captions", captionPath, err)
	}

	args := d.Args(video)
	d.logger.Debug("running yt-dlp",
		logging.String("binary", d.opts.Binary),
		logging.String("args", strings.Join(args, " ")),
	)
	started := time.Now()
	if err := d.run(ctx, d.opts.Binary, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "download", "run yt-dlp", "", fmt.Errorf("%w: %w", ErrDownload, err))
	}

	data, err := os.ReadFile(captionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "download", "read captions", captionPath, ErrCaptionsMissing)
		}
		return nil, services.Wrap(services.ErrExternalTool, "download", "read captions", captionPath, err)
	}
	d.logger.Info("captions downloaded",
		logging.String("path", captionPath),
		logging.Int("bytes", len(data)),
		logging.Duration("elapsed", time.Since(started)),
	)

	if !d.opts.KeepCaptions {
		if err := os.Remove(captionPath); err != nil {
			d.logger.Warn("remove caption file failed", logging.String("path", captionPath), logging.Error(err))
		}
	}
	return data, nil
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
