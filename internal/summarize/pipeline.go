package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"capsum/internal/captions"
	"capsum/internal/config"
	"capsum/internal/logging"
	"capsum/internal/prompt"
	"capsum/internal/services"
	"capsum/internal/services/llm"
)

// Fetcher retrieves the raw caption track for a video.
type Fetcher interface {
	Fetch(ctx context.Context, video string) ([]byte, error)
}

// Completer sends a prompt to the summarization model.
type Completer interface {
	Complete(ctx context.Context, p prompt.Prompt) (llm.CompletionResult, error)
}

// CompleterFactory builds a Completer once the bearer token is known.
type CompleterFactory func(apiKey string) Completer

// Options controls how captions become a prompt.
type Options struct {
	Format         captions.FormatOptions
	MaxLines       int
	TimestampStyle captions.TimestampStyle
	CredentialFile string
	// DryRun prints the prompt instead of contacting the model.
	DryRun bool
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	RunID      string
	CueCount   int
	LineCount  int
	Dropped    int
	Completion llm.CompletionResult
}

// Pipeline sequences download, caption processing, and completion for one video.
type Pipeline struct {
	fetcher   Fetcher
	completer CompleterFactory
	opts      Options
	out       io.Writer
	notice    func(string) string
	logger    *slog.Logger
}

// Option customizes the pipeline.
type Option func(*Pipeline)

// WithNoticeStyle decorates progress notices (e.g. with terminal colors).
func WithNoticeStyle(style func(string) string) Option {
	return func(p *Pipeline) {
		if style != nil {
			p.notice = style
		}
	}
}

// New constructs a Pipeline writing user-facing output to out.
func New(fetcher Fetcher, completer CompleterFactory, opts Options, out io.Writer, logger *slog.Logger, options ...Option) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	p := &Pipeline{
		fetcher:   fetcher,
		completer: completer,
		opts:      opts,
		out:       out,
		notice:    func(s string) string { return s },
		logger:    logging.NewComponentLogger(logger, "summarize"),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run summarizes video and prints progress and the summary to the output writer.
func (p *Pipeline) Run(ctx context.Context, video string) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, p.logger)
	started := time.Now()

	p.printf("%s\n", p.notice("Downloading auto subs..."))
	raw, err := p.fetcher.Fetch(services.WithStage(ctx, "download"), video)
	if err != nil {
		return result, p.fail(logger, "download", err)
	}

	cues, err := captions.Parse(raw, p.opts.TimestampStyle)
	if err != nil {
		return result, p.fail(logger, "parse", err)
	}
	result.CueCount = len(cues)

	lines := captions.Format(cues, p.opts.Format)
	truncated := captions.Truncate(lines, p.opts.MaxLines)
	result.LineCount = len(truncated.Lines)
	result.Dropped = truncated.Dropped
	logger.Info("captions formatted",
		logging.Int("cues", result.CueCount),
		logging.Int("lines", len(lines)),
		logging.Int("dropped", result.Dropped),
	)
	if truncated.Dropped > 0 {
		p.printf("%s\n", p.notice(captions.CutoffNotice(truncated.Dropped)))
	}

	built := prompt.Build(captions.JoinLines(truncated.Lines), captions.HasTimestamps(truncated.Lines))
	if p.opts.DryRun {
		p.printf("%s", built.Render())
		return result, nil
	}

	apiKey, err := config.ReadCredential(p.opts.CredentialFile)
	if err != nil {
		return result, p.fail(logger, "credential", err)
	}

	p.printf("%s\n\n", p.notice("Asking for a summary..."))
	completion, err := p.completer(apiKey).Complete(services.WithStage(ctx, "complete"), built)
	if err != nil {
		return result, p.fail(logger, "complete", err)
	}
	result.Completion = completion
	if _, ok := completion.(llm.Failure); ok {
		logger.Warn("completion endpoint returned a non-completion payload")
	}

	p.printf("%s\n", completion.Display())
	logger.Info("summary complete", logging.Duration("elapsed", time.Since(started)))
	return result, nil
}

func (p *Pipeline) fail(logger *slog.Logger, stage string, err error) error {
	logger.Error("summarize failed",
		logging.String(logging.FieldStage, stage),
		logging.String(logging.FieldErrorKind, services.Kind(err)),
		logging.Error(err),
	)
	return err
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
