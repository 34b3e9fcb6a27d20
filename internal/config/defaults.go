package config

const (
	defaultConfigPath     = "~/.config/capsum/config.toml"
	projectConfigName     = "capsum.toml"
	defaultWorkDir        = "."
	defaultCredentialFile = "api_key.txt"
	defaultDownloadBinary = "yt-dlp"
	defaultBaseName       = "subs"
	defaultLanguage       = "en"
	defaultStride         = 10
	defaultMaxLines       = 400
	defaultDedupScope     = DedupGlobal
	defaultTimestampStyle = TimestampAuto
	defaultLLMBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel       = "gpt-3.5-turbo"
	defaultLLMTimeout     = 120
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Accepted values for captions.dedup_scope.
const (
	DedupGlobal   = "global"
	DedupAdjacent = "adjacent"
)

// Accepted values for captions.timestamp_style.
const (
	TimestampAuto    = "auto"
	TimestampMinutes = "minutes"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:        defaultWorkDir,
			CredentialFile: defaultCredentialFile,
		},
		Download: Download{
			Binary:       defaultDownloadBinary,
			BaseName:     defaultBaseName,
			Language:     defaultLanguage,
			KeepCaptions: true,
		},
		Captions: Captions{
			TagTimestamps:  true,
			Stride:         defaultStride,
			DedupScope:     defaultDedupScope,
			MaxLines:       defaultMaxLines,
			TimestampStyle: defaultTimestampStyle,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
