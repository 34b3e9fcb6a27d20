package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDownload() error {
	if strings.ContainsAny(c.Download.BaseName, `/\`) {
		return fmt.Errorf("download.base_name must be a bare file name, got %q", c.Download.BaseName)
	}
	if strings.ContainsAny(c.Download.Language, `/\ `) {
		return fmt.Errorf("download.language must be a language code, got %q", c.Download.Language)
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.Stride <= 0 {
		return errors.New("captions.stride must be positive")
	}
	if c.Captions.MaxLines < 0 {
		return errors.New("captions.max_lines must be >= 0 (0 disables the cap)")
	}
	switch c.Captions.DedupScope {
	case DedupGlobal, DedupAdjacent:
	default:
		return fmt.Errorf("captions.dedup_scope must be %q or %q, got %q", DedupGlobal, DedupAdjacent, c.Captions.DedupScope)
	}
	switch c.Captions.TimestampStyle {
	case TimestampAuto, TimestampMinutes:
	default:
		return fmt.Errorf("captions.timestamp_style must be %q or %q, got %q", TimestampAuto, TimestampMinutes, c.Captions.TimestampStyle)
	}
	return nil
}

func (c *Config) validateLLM() error {
	parsed, err := url.Parse(c.LLM.BaseURL)
	if err != nil {
		return fmt.Errorf("llm.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("llm.base_url must be an http(s) URL, got %q", c.LLM.BaseURL)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
}
