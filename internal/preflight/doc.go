// Package preflight provides readiness checks for the external pieces capsum
// depends on: the yt-dlp binary, the work directory, the credential file, and
// optionally the completion endpoint itself.
//
// The CLI "capsum check" command runs RunAll and renders the results as a
// table. The LLM probe makes a real request, so it only runs on demand.
package preflight
