package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"capsum/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var includeLLM bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check yt-dlp, work directory, and credential readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, includeLLM)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, renderCheckStatus(r.Passed, colorize), r.Detail})
			}
			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeLLM, "llm", false, "Also send a test request to the completion endpoint")
	return cmd
}
