package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeCaptions()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}

	credential := strings.TrimSpace(c.Paths.CredentialFile)
	if value, ok := os.LookupEnv("CAPSUM_API_KEY_FILE"); ok && strings.TrimSpace(value) != "" {
		credential = strings.TrimSpace(value)
	}
	if credential == "" {
		credential = defaultCredentialFile
	}
	// Relative credential paths live next to the downloaded captions.
	if !strings.HasPrefix(credential, "~") && !filepath.IsAbs(credential) {
		credential = filepath.Join(c.Paths.WorkDir, credential)
	}
	if c.Paths.CredentialFile, err = expandPath(credential); err != nil {
		return fmt.Errorf("paths.credential_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.Binary = strings.TrimSpace(c.Download.Binary)
	if c.Download.Binary == "" {
		c.Download.Binary = defaultDownloadBinary
	}
	c.Download.BaseName = strings.TrimSpace(c.Download.BaseName)
	if c.Download.BaseName == "" {
		c.Download.BaseName = defaultBaseName
	}
	c.Download.Language = strings.ToLower(strings.TrimSpace(c.Download.Language))
	if c.Download.Language == "" {
		c.Download.Language = defaultLanguage
	}
}

func (c *Config) normalizeCaptions() {
	if c.Captions.Stride <= 0 {
		c.Captions.Stride = defaultStride
	}
	c.Captions.DedupScope = strings.ToLower(strings.TrimSpace(c.Captions.DedupScope))
	if c.Captions.DedupScope == "" {
		c.Captions.DedupScope = defaultDedupScope
	}
	c.Captions.TimestampStyle = strings.ToLower(strings.TrimSpace(c.Captions.TimestampStyle))
	if c.Captions.TimestampStyle == "" {
		c.Captions.TimestampStyle = defaultTimestampStyle
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if value, ok := os.LookupEnv("CAPSUM_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.LLM.BaseURL = strings.TrimSpace(value)
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if value, ok := os.LookupEnv("CAPSUM_MODEL"); ok && strings.TrimSpace(value) != "" {
		c.LLM.Model = strings.TrimSpace(value)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
