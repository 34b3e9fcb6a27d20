// Command capsum summarizes a video from its auto-generated captions.
//
//	capsum [flags] <video>
//
// The video reference is handed to yt-dlp unchanged. Progress notices and the
// model's reply are written to stdout; logs go to stderr.
//
// Subcommands:
//
//	capsum check [--llm]    report dependency and credential readiness
//	capsum config init      write a sample configuration file
//	capsum config show      print the effective configuration
//	capsum config validate  load and validate the configuration
package main
