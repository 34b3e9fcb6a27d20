package preflight

import (
	"context"

	"capsum/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks for cfg. The LLM probe only runs when
// includeLLM is set.
func RunAll(ctx context.Context, cfg *config.Config, includeLLM bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDownloader(cfg.Download.Binary),
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckCredential("Credential file", cfg.Paths.CredentialFile),
	}
	if includeLLM {
		results = append(results, CheckLLM(ctx, "LLM", cfg))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
