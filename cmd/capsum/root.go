package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"capsum/internal/captions"
	"capsum/internal/config"
	"capsum/internal/services/llm"
	"capsum/internal/services/ytdlp"
	"capsum/internal/summarize"
)

type summarizeFlags struct {
	noTimestamps   bool
	stride         int
	maxLines       int
	dedup          string
	timestampStyle string
	model          string
	dryRun         bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags summarizeFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "capsum [flags] <video>",
		Short:         "Summarize a video from its auto-generated captions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applySummarizeFlags(cmd, cfg, flags); err != nil {
				return err
			}
			return runSummarize(cmd, ctx, cfg, args[0], flags.dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&flags.noTimestamps, "no-timestamps", false, "Do not prefix caption lines with timestamps")
	rootCmd.Flags().IntVar(&flags.stride, "stride", captions.DefaultStride, "Emit a timestamp every N caption lines")
	rootCmd.Flags().IntVar(&flags.maxLines, "max-lines", captions.DefaultMaxLines, "Maximum caption lines sent to the model (0 = unbounded)")
	rootCmd.Flags().StringVar(&flags.dedup, "dedup", config.DedupGlobal, "Repeated line handling: global or adjacent")
	rootCmd.Flags().StringVar(&flags.timestampStyle, "timestamp-style", config.TimestampAuto, "Timestamp labels: auto or minutes")
	rootCmd.Flags().StringVar(&flags.model, "model", "", "Model name (overrides llm.model)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the prompt instead of calling the model")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// applySummarizeFlags copies explicitly set flags over the loaded config and
// revalidates the result.
func applySummarizeFlags(cmd *cobra.Command, cfg *config.Config, flags summarizeFlags) error {
	changed := cmd.Flags().Changed
	if changed("no-timestamps") {
		cfg.Captions.TagTimestamps = !flags.noTimestamps
	}
	if changed("stride") {
		cfg.Captions.Stride = flags.stride
	}
	if changed("max-lines") {
		cfg.Captions.MaxLines = flags.maxLines
	}
	if changed("dedup") {
		cfg.Captions.DedupScope = strings.ToLower(strings.TrimSpace(flags.dedup))
	}
	if changed("timestamp-style") {
		cfg.Captions.TimestampStyle = strings.ToLower(strings.TrimSpace(flags.timestampStyle))
	}
	if changed("model") {
		cfg.LLM.Model = strings.TrimSpace(flags.model)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func runSummarize(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, video string, dryRun bool) error {
	logger := ctx.logger(cmd.ErrOrStderr())

	downloader := ytdlp.New(ytdlp.Options{
		Binary:       cfg.Download.Binary,
		WorkDir:      cfg.Paths.WorkDir,
		BaseName:     cfg.Download.BaseName,
		Language:     cfg.Download.Language,
		KeepCaptions: cfg.Download.KeepCaptions,
	}, logger)

	settings := cfg.GetLLM()
	completer := func(apiKey string) summarize.Completer {
		return llm.NewClient(llm.Config{
			APIKey:         apiKey,
			BaseURL:        settings.BaseURL,
			Model:          settings.Model,
			Referer:        settings.Referer,
			Title:          settings.Title,
			TimeoutSeconds: settings.TimeoutSeconds,
		})
	}

	out := cmd.OutOrStdout()
	pipeline := summarize.New(downloader, completer, summarize.Options{
		Format: captions.FormatOptions{
			TagTimestamps: cfg.Captions.TagTimestamps,
			Stride:        cfg.Captions.Stride,
			DedupScope:    captions.DedupScope(cfg.Captions.DedupScope),
		},
		MaxLines:       cfg.Captions.MaxLines,
		TimestampStyle: captions.TimestampStyle(cfg.Captions.TimestampStyle),
		CredentialFile: cfg.Paths.CredentialFile,
		DryRun:         dryRun,
	}, out, logger, summarize.WithNoticeStyle(noticeStyle(shouldColorize(out))))

	_, err := pipeline.Run(cmd.Context(), video)
	return err
}
